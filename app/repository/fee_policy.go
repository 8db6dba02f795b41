package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bigs-im/pg-gateway/app/entity"
)

type FeePolicyRepository struct {
	db DBTX
}

func NewFeePolicyRepository(db DBTX) *FeePolicyRepository {
	return &FeePolicyRepository{db: db}
}

// FindEffective returns the partner's policy with the latest effective_from
// not after asOf, or nil when the partner has no applicable policy.
// effective_from is unique per partner, so the ordering is total.
func (r *FeePolicyRepository) FindEffective(ctx context.Context, partnerID int64, asOf time.Time) (*entity.FeePolicy, error) {
	query := `
		SELECT id, partner_id, effective_from, percentage, fixed_fee
		FROM fee_policies
		WHERE partner_id = ? AND effective_from <= ?
		ORDER BY effective_from DESC
		LIMIT 1
	`

	policy := &entity.FeePolicy{}
	var fixedFee decimal.NullDecimal
	err := r.db.QueryRowContext(ctx, query, partnerID, asOf).Scan(
		&policy.ID,
		&policy.PartnerID,
		&policy.EffectiveFrom,
		&policy.Percentage,
		&fixedFee,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	policy.FixedFee = decimalPtrFromNull(fixedFee)
	return policy, nil
}
