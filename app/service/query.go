package service

import (
	"context"
	"time"

	"github.com/bigs-im/pg-gateway/app/entity"
	"github.com/bigs-im/pg-gateway/app/repository"
	"github.com/bigs-im/pg-gateway/config"
)

const (
	defaultQueryLimit = 20
	maxQueryLimit     = 100
)

type paymentReadRepository interface {
	FindBy(ctx context.Context, q repository.PaymentQuery) (*repository.PaymentPage, error)
	Summarize(ctx context.Context, f repository.SummaryFilter) (*entity.PaymentSummary, error)
}

type QueryFilter struct {
	PartnerID *int64
	Status    *entity.PaymentStatus
	From      *time.Time
	To        *time.Time
	Cursor    string
	Limit     int
}

type QueryResult struct {
	Items      []*entity.Payment
	Summary    *entity.PaymentSummary
	NextCursor string
	HasNext    bool
}

// QueryService serves paginated payment history. The summary alongside every
// page is computed over the full filtered set, so two pages of the same
// filter always report identical totals. Page and summary are two port calls;
// records are append-only, so the millisecond gap between them is an accepted
// staleness window.
type QueryService struct {
	paymentRepo paymentReadRepository
	queryCfg    config.QueryConfig
}

func NewQueryService(paymentRepo paymentReadRepository, queryCfg config.QueryConfig) *QueryService {
	if queryCfg.DefaultLimit <= 0 {
		queryCfg.DefaultLimit = defaultQueryLimit
	}
	if queryCfg.MaxLimit <= 0 {
		queryCfg.MaxLimit = maxQueryLimit
	}
	return &QueryService{paymentRepo: paymentRepo, queryCfg: queryCfg}
}

func (s *QueryService) Query(ctx context.Context, filter *QueryFilter) (*QueryResult, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = s.queryCfg.DefaultLimit
	}
	if limit > s.queryCfg.MaxLimit {
		limit = s.queryCfg.MaxLimit
	}

	cursorCreatedAt, cursorID := decodeCursor(filter.Cursor)

	page, err := s.paymentRepo.FindBy(ctx, repository.PaymentQuery{
		PartnerID:       filter.PartnerID,
		Status:          filter.Status,
		From:            filter.From,
		To:              filter.To,
		CursorCreatedAt: cursorCreatedAt,
		CursorID:        cursorID,
		Limit:           limit,
	})
	if err != nil {
		return nil, err
	}

	summary, err := s.paymentRepo.Summarize(ctx, repository.SummaryFilter{
		PartnerID: filter.PartnerID,
		Status:    filter.Status,
		From:      filter.From,
		To:        filter.To,
	})
	if err != nil {
		return nil, err
	}

	return &QueryResult{
		Items:      page.Items,
		Summary:    summary,
		NextCursor: encodeCursor(page.NextCursorCreatedAt, page.NextCursorID),
		HasNext:    page.HasNext,
	}, nil
}
