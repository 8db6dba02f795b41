package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bigs-im/pg-gateway/app/entity"
)

// CardCredentials is the authorization data forwarded to a processor. It is
// never persisted; the payment record keeps only bin and last four digits.
type CardCredentials struct {
	Number    string
	BirthDate string
	Expiry    string
	Password  string
}

type ApproveRequest struct {
	PartnerID int64
	Amount    decimal.Decimal
	Card      CardCredentials
}

// ApproveResult is the normalized outcome of one authorization call.
type ApproveResult struct {
	ApprovalCode string
	ApprovedAt   time.Time
	Status       entity.PaymentStatus
	CardBin      string
	CardLast4    string
}

// Provider integrates one external payment processor. Supports decides
// whether this processor handles the given partner; providers may claim
// partners by arbitrary rules, so dispatch stays predicate-based.
type Provider interface {
	Name() string
	Supports(partnerID int64) bool
	Approve(ctx context.Context, req *ApproveRequest) (*ApproveResult, error)
}

// DeclinedError is an explicit business rejection by the processor. It is a
// terminal outcome for the attempt and is never retried automatically.
type DeclinedError struct {
	Code        int
	ErrorCode   string
	Message     string
	ReferenceID string
}

func (e *DeclinedError) Error() string {
	return fmt.Sprintf("payment declined: code=%d errorCode=%s message=%s referenceId=%s",
		e.Code, e.ErrorCode, e.Message, e.ReferenceID)
}

// TransportError is a network or processor-side fault other than an explicit
// decline. Whether to retry is the caller's decision.
type TransportError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("processor transport fault: %v", e.Err)
	}
	return fmt.Sprintf("processor transport fault: status=%d detail=%s", e.StatusCode, e.Detail)
}

func (e *TransportError) Unwrap() error { return e.Err }
