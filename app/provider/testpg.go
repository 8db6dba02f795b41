package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bigs-im/pg-gateway/app/crypto"
	"github.com/bigs-im/pg-gateway/app/entity"
	"github.com/bigs-im/pg-gateway/app/factory"
)

const (
	testPGApproveEndpoint = "/api/v1/pay/credit-card"
	testPGAPIKeyHeader    = "API-KEY"
)

// ErrProviderAuth means the processor rejected our API key. That is a
// configuration error, not a per-payment decline, and is fatal.
var ErrProviderAuth = errors.New("processor authentication failed")

type TestPGConfig struct {
	BaseURL     string
	APIKey      string
	IV          string
	HTTPTimeout time.Duration
}

// TestPGClient integrates the TestPG processor. Card data is encrypted with
// AES-256-GCM before it crosses the trust boundary; only the API key header
// travels in plaintext.
type TestPGClient struct {
	cfg       TestPGConfig
	encryptor *crypto.AESGCMEncryptor
	client    *http.Client
	logger    logrus.FieldLogger
}

func NewTestPGClient(cfg TestPGConfig) (*TestPGClient, error) {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	encryptor, err := crypto.NewAESGCMEncryptor(cfg.APIKey, cfg.IV)
	if err != nil {
		return nil, fmt.Errorf("testpg encryptor: %w", err)
	}

	return &TestPGClient{
		cfg:       cfg,
		encryptor: encryptor,
		client:    &http.Client{Timeout: timeout},
		logger:    factory.NewModuleLogger("testpg-client"),
	}, nil
}

func (p *TestPGClient) Name() string { return "testpg" }

// Supports claims even-numbered partners; odd ones fall through to the mock
// processor.
func (p *TestPGClient) Supports(partnerID int64) bool {
	return partnerID%2 == 0
}

type testPGRequest struct {
	Enc string `json:"enc"`
}

type testPGPayload struct {
	CardNumber string `json:"cardNumber"`
	BirthDate  string `json:"birthDate"`
	Expiry     string `json:"expiry"`
	Password   string `json:"password"`
	Amount     int64  `json:"amount"`
}

type testPGSuccessResponse struct {
	ApprovalCode    string `json:"approvalCode"`
	ApprovedAt      string `json:"approvedAt"`
	MaskedCardLast4 string `json:"maskedCardLast4"`
	Amount          int64  `json:"amount"`
	Status          string `json:"status"`
}

type testPGErrorResponse struct {
	Code        int    `json:"code"`
	ErrorCode   string `json:"errorCode"`
	Message     string `json:"message"`
	ReferenceID string `json:"referenceId"`
}

func (p *TestPGClient) Approve(ctx context.Context, req *ApproveRequest) (*ApproveResult, error) {
	if strings.TrimSpace(p.cfg.BaseURL) == "" {
		return nil, errors.New("testpg base url is not configured")
	}

	p.logger.WithFields(logrus.Fields{
		"partner_id": req.PartnerID,
		"amount":     req.Amount.String(),
	}).Info("TestPG approve request")

	payload := testPGPayload{
		CardNumber: req.Card.Number,
		BirthDate:  req.Card.BirthDate,
		Expiry:     req.Card.Expiry,
		Password:   req.Card.Password,
		Amount:     req.Amount.IntPart(),
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(testPGRequest{Enc: p.encryptor.Encrypt(string(payloadJSON))})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(p.cfg.BaseURL, "/")+testPGApproveEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(testPGAPIKeyHeader, p.cfg.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return p.handleSuccess(req, respBody)
	}
	return nil, p.handleError(resp.StatusCode, respBody)
}

func (p *TestPGClient) handleSuccess(req *ApproveRequest, body []byte) (*ApproveResult, error) {
	var success testPGSuccessResponse
	if err := json.Unmarshal(body, &success); err != nil {
		return nil, &TransportError{StatusCode: http.StatusOK, Detail: "unparseable success body", Err: err}
	}
	if strings.TrimSpace(success.ApprovalCode) == "" {
		return nil, &TransportError{StatusCode: http.StatusOK, Detail: "empty approval code in success body"}
	}

	approvedAt, err := parseLocalDateTime(success.ApprovedAt)
	if err != nil {
		return nil, &TransportError{StatusCode: http.StatusOK, Detail: "unparseable approvedAt: " + success.ApprovedAt, Err: err}
	}

	status := entity.PaymentStatus(strings.ToUpper(strings.TrimSpace(success.Status)))
	if !status.Valid() {
		status = entity.PaymentStatusApproved
	}

	last4 := strings.TrimSpace(success.MaskedCardLast4)
	if last4 == "" {
		last4 = CardLast4(req.Card.Number)
	}

	p.logger.WithField("approval_code", success.ApprovalCode).Info("TestPG approve success")

	return &ApproveResult{
		ApprovalCode: success.ApprovalCode,
		ApprovedAt:   approvedAt,
		Status:       status,
		CardBin:      CardBin(req.Card.Number),
		CardLast4:    last4,
	}, nil
}

func (p *TestPGClient) handleError(statusCode int, body []byte) error {
	switch statusCode {
	case http.StatusUnauthorized:
		p.logger.Error("TestPG rejected API key")
		return ErrProviderAuth
	case http.StatusUnprocessableEntity:
		var rejection testPGErrorResponse
		if err := json.Unmarshal(body, &rejection); err != nil {
			p.logger.WithField("body", string(body)).Error("TestPG error body unparseable")
			return &TransportError{StatusCode: statusCode, Detail: string(body), Err: err}
		}
		p.logger.WithFields(logrus.Fields{
			"error_code":   rejection.ErrorCode,
			"reference_id": rejection.ReferenceID,
		}).Warn("TestPG declined payment")
		return &DeclinedError{
			Code:        rejection.Code,
			ErrorCode:   rejection.ErrorCode,
			Message:     rejection.Message,
			ReferenceID: rejection.ReferenceID,
		}
	default:
		p.logger.WithField("status", statusCode).Error("TestPG unexpected response")
		return &TransportError{StatusCode: statusCode, Detail: string(body)}
	}
}

// parseLocalDateTime reads the processor's ISO-8601 local date-time, which
// carries no zone and may carry fractional seconds.
func parseLocalDateTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	layouts := []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// CardBin extracts the 6-digit issuer prefix from a formatted card number.
func CardBin(cardNumber string) string {
	digits := digitsOnly(cardNumber)
	if len(digits) < 6 {
		return digits
	}
	return digits[:6]
}

// CardLast4 extracts the trailing four digits of a formatted card number.
func CardLast4(cardNumber string) string {
	digits := digitsOnly(cardNumber)
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

func digitsOnly(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
