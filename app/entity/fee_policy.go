package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeePolicy is one versioned fee schedule for a partner. A partner may carry
// several policies; the effective one for a payment is the latest whose
// EffectiveFrom is not after the evaluation time.
type FeePolicy struct {
	ID            int64
	PartnerID     int64
	EffectiveFrom time.Time

	// Percentage is an exact decimal fraction, e.g. 0.0235 for 2.35%.
	Percentage decimal.Decimal
	// FixedFee is an optional flat component in the same minor unit as
	// payment amounts.
	FixedFee *decimal.Decimal
}

// CalculateFee applies the policy to a gross amount. The percentage component
// is rounded half-up to the minor unit before the fixed fee is added; the
// rounding mode is observable in stored records and must not change.
func (p *FeePolicy) CalculateFee(amount decimal.Decimal) (fee decimal.Decimal, net decimal.Decimal) {
	fee = amount.Mul(p.Percentage).Round(0)
	if p.FixedFee != nil {
		fee = fee.Add(*p.FixedFee)
	}
	net = amount.Sub(fee)
	return fee, net
}
