package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bigs-im/pg-gateway/app/entity"
)

var ErrPaymentAlreadyExists = errors.New("payment already exists")

// PaymentQuery filters one page of payment history. The cursor fields hold
// the (created_at, id) position of the last item on the previous page.
type PaymentQuery struct {
	PartnerID *int64
	Status    *entity.PaymentStatus
	From      *time.Time
	To        *time.Time

	CursorCreatedAt *time.Time
	CursorID        *int64
	Limit           int
}

type PaymentPage struct {
	Items   []*entity.Payment
	HasNext bool

	NextCursorCreatedAt *time.Time
	NextCursorID        *int64
}

// SummaryFilter deliberately carries no cursor or limit: the summary always
// covers the full matching set.
type SummaryFilter struct {
	PartnerID *int64
	Status    *entity.PaymentStatus
	From      *time.Time
	To        *time.Time
}

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (
			partner_id, amount, applied_fee_rate, fee_amount, net_amount,
			card_bin, card_last4, approval_code, approved_at, status,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		payment.PartnerID,
		payment.Amount,
		payment.AppliedFeeRate,
		payment.FeeAmount,
		payment.NetAmount,
		payment.CardBin,
		payment.CardLast4,
		payment.ApprovalCode,
		payment.ApprovedAt,
		string(payment.Status),
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrPaymentAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	payment.ID = id
	return nil
}

// FindBy fetches one page ordered by (created_at DESC, id DESC). One extra
// row is requested to decide hasNext without a second round trip.
func (r *PaymentRepository) FindBy(ctx context.Context, q PaymentQuery) (*PaymentPage, error) {
	query := `
		SELECT id, partner_id, amount, applied_fee_rate, fee_amount, net_amount,
			card_bin, card_last4, approval_code, approved_at, status,
			created_at, updated_at
		FROM payments
	`

	conditions, args := filterConditions(q.PartnerID, q.Status, q.From, q.To)
	if q.CursorCreatedAt != nil && q.CursorID != nil {
		conditions = append(conditions, "(created_at < ? OR (created_at = ? AND id < ?))")
		args = append(args, timePtrValue(q.CursorCreatedAt), timePtrValue(q.CursorCreatedAt), *q.CursorID)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, q.Limit+1)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Payment, 0, q.Limit)
	for rows.Next() {
		item, err := scanPaymentFromRows(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	page := &PaymentPage{}
	if len(items) > q.Limit {
		items = items[:q.Limit]
		page.HasNext = true
	}
	page.Items = items
	if page.HasNext && len(items) > 0 {
		last := items[len(items)-1]
		createdAt := last.CreatedAt
		id := last.ID
		page.NextCursorCreatedAt = &createdAt
		page.NextCursorID = &id
	}

	return page, nil
}

// Summarize aggregates count and totals over the full filtered set. The
// result never depends on pagination state.
func (r *PaymentRepository) Summarize(ctx context.Context, f SummaryFilter) (*entity.PaymentSummary, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(amount), 0), COALESCE(SUM(net_amount), 0)
		FROM payments
	`

	conditions, args := filterConditions(f.PartnerID, f.Status, f.From, f.To)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	summary := &entity.PaymentSummary{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&summary.Count,
		&summary.TotalAmount,
		&summary.TotalNetAmount,
	)
	if err != nil {
		return nil, err
	}

	return summary, nil
}

func filterConditions(partnerID *int64, status *entity.PaymentStatus, from, to *time.Time) ([]string, []interface{}) {
	conditions := make([]string, 0, 4)
	args := make([]interface{}, 0, 6)

	if partnerID != nil {
		conditions = append(conditions, "partner_id = ?")
		args = append(args, *partnerID)
	}
	if status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*status))
	}
	if from != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *from)
	}
	if to != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *to)
	}

	return conditions, args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(scan rowScanner, payment *entity.Payment) error {
	var status string
	var amount, feeRate, feeAmount, netAmount decimal.Decimal

	err := scan.Scan(
		&payment.ID,
		&payment.PartnerID,
		&amount,
		&feeRate,
		&feeAmount,
		&netAmount,
		&payment.CardBin,
		&payment.CardLast4,
		&payment.ApprovalCode,
		&payment.ApprovedAt,
		&status,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return err
	}

	payment.Amount = amount
	payment.AppliedFeeRate = feeRate
	payment.FeeAmount = feeAmount
	payment.NetAmount = netAmount
	payment.Status = entity.PaymentStatus(status)

	return nil
}

func scanPaymentFromRows(rows *sql.Rows) (*entity.Payment, error) {
	item := &entity.Payment{}
	if err := scanPayment(rows, item); err != nil {
		return nil, err
	}
	return item, nil
}
