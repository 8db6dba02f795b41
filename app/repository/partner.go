package repository

import (
	"context"
	"database/sql"

	"github.com/bigs-im/pg-gateway/app/entity"
)

// PartnerRepository reads merchant accounts. Partners are provisioned by an
// administrative process and are read-only here.
type PartnerRepository struct {
	db DBTX
}

func NewPartnerRepository(db DBTX) *PartnerRepository {
	return &PartnerRepository{db: db}
}

func (r *PartnerRepository) FindByID(ctx context.Context, id int64) (*entity.Partner, error) {
	query := `
		SELECT id, code, name, active, created_at, updated_at
		FROM partners
		WHERE id = ?
	`

	partner := &entity.Partner{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&partner.ID,
		&partner.Code,
		&partner.Name,
		&partner.Active,
		&partner.CreatedAt,
		&partner.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return partner, nil
}
