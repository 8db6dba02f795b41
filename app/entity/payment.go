package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusApproved PaymentStatus = "APPROVED"
	PaymentStatusDeclined PaymentStatus = "DECLINED"
	PaymentStatusFailed   PaymentStatus = "FAILED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusApproved, PaymentStatusDeclined, PaymentStatusFailed:
		return true
	default:
		return false
	}
}

// Payment is the record of one attempt that reached a terminal state. It is
// persisted exactly once and never mutated afterwards; only masked card
// identifiers are stored.
type Payment struct {
	ID        int64
	PartnerID int64

	Amount decimal.Decimal

	// AppliedFeeRate is copied from the resolved policy at computation time.
	// Later policy changes never alter a stored record.
	AppliedFeeRate decimal.Decimal
	FeeAmount      decimal.Decimal
	NetAmount      decimal.Decimal

	CardBin   string
	CardLast4 string

	ApprovalCode string
	ApprovedAt   time.Time

	Status PaymentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentSummary aggregates the full filtered set, never a single page.
type PaymentSummary struct {
	Count          int64
	TotalAmount    decimal.Decimal
	TotalNetAmount decimal.Decimal
}
