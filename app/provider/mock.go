package provider

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bigs-im/pg-gateway/app/entity"
)

// MockPGClient approves locally without any network call. It claims the
// odd-numbered partners TestPG does not, which keeps local development and
// dispatch fallbacks working without processor credentials.
type MockPGClient struct{}

func NewMockPGClient() *MockPGClient { return &MockPGClient{} }

func (p *MockPGClient) Name() string { return "mockpg" }

func (p *MockPGClient) Supports(partnerID int64) bool {
	return partnerID%2 != 0
}

func (p *MockPGClient) Approve(_ context.Context, req *ApproveRequest) (*ApproveResult, error) {
	return &ApproveResult{
		ApprovalCode: "MOCK-" + strings.ToUpper(uuid.NewString()[:8]),
		ApprovedAt:   time.Now().UTC(),
		Status:       entity.PaymentStatusApproved,
		CardBin:      CardBin(req.Card.Number),
		CardLast4:    CardLast4(req.Card.Number),
	}, nil
}
