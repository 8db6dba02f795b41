package types

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/bigs-im/pg-gateway/app/entity"
)

// Sandbox card published by the TestPG processor. Used when a caller omits
// card data, which keeps the local/dev flow working without real credentials.
const (
	SandboxCardNumber    = "1111-1111-1111-1111"
	SandboxCardBirthDate = "19900101"
	SandboxCardExpiry    = "1227"
	SandboxCardPassword  = "12"
)

type CreatePaymentRequest struct {
	PartnerID int64           `json:"partner_id"`
	Amount    decimal.Decimal `json:"amount"`

	CardNumber string `json:"card_number"`
	BirthDate  string `json:"birth_date"`
	Expiry     string `json:"expiry"`
	Password   string `json:"password"`
}

func NewCreatePaymentRequestFromContext(ctx echo.Context) (*CreatePaymentRequest, error) {
	var body CreatePaymentRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.CardNumber = strings.TrimSpace(body.CardNumber)
	body.BirthDate = strings.TrimSpace(body.BirthDate)
	body.Expiry = strings.TrimSpace(body.Expiry)
	body.Password = strings.TrimSpace(body.Password)

	if body.CardNumber == "" {
		body.CardNumber = SandboxCardNumber
		body.BirthDate = SandboxCardBirthDate
		body.Expiry = SandboxCardExpiry
		body.Password = SandboxCardPassword
	}

	return &body, nil
}

func (r *CreatePaymentRequest) Validate() error {
	if r.PartnerID <= 0 {
		return errors.New("partner_id is required")
	}
	if r.Amount.Cmp(decimal.Zero) <= 0 {
		return errors.New("amount must be > 0")
	}
	if r.CardNumber == "" {
		return errors.New("card_number is required")
	}
	if r.BirthDate == "" {
		return errors.New("birth_date is required")
	}
	if r.Expiry == "" {
		return errors.New("expiry is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type QueryPaymentsRequest struct {
	PartnerID *int64
	Status    *entity.PaymentStatus
	From      *time.Time
	To        *time.Time
	Cursor    string
	Limit     int
}

func NewQueryPaymentsRequestFromContext(ctx echo.Context) (*QueryPaymentsRequest, error) {
	req := &QueryPaymentsRequest{
		Cursor: strings.TrimSpace(ctx.QueryParam("cursor")),
	}

	if raw := strings.TrimSpace(ctx.QueryParam("partner_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.New("invalid partner_id")
		}
		req.PartnerID = &id
	}

	if raw := strings.ToUpper(strings.TrimSpace(ctx.QueryParam("status"))); raw != "" {
		status := entity.PaymentStatus(raw)
		if !status.Valid() {
			return nil, errors.New("invalid status")
		}
		req.Status = &status
	}

	if raw := strings.TrimSpace(ctx.QueryParam("from")); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errors.New("invalid from timestamp")
		}
		req.From = &from
	}

	if raw := strings.TrimSpace(ctx.QueryParam("to")); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errors.New("invalid to timestamp")
		}
		req.To = &to
	}

	if raw := strings.TrimSpace(ctx.QueryParam("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("invalid limit")
		}
		req.Limit = limit
	}

	return req, nil
}

func (r *QueryPaymentsRequest) Validate() error {
	if r.Limit < 0 {
		return errors.New("limit must be >= 0")
	}
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return errors.New("from must not be after to")
	}
	return nil
}

type Payment struct {
	ID             int64           `json:"id"`
	PartnerID      int64           `json:"partner_id"`
	Amount         decimal.Decimal `json:"amount"`
	AppliedFeeRate decimal.Decimal `json:"applied_fee_rate"`
	FeeAmount      decimal.Decimal `json:"fee_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	CardBin        string          `json:"card_bin"`
	CardLast4      string          `json:"card_last4"`
	ApprovalCode   string          `json:"approval_code"`
	ApprovedAt     string          `json:"approved_at"`
	Status         string          `json:"status"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

type PaymentSummary struct {
	Count          int64           `json:"count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TotalNetAmount decimal.Decimal `json:"total_net_amount"`
}

type DeclineDetail struct {
	Code        int    `json:"code"`
	ErrorCode   string `json:"error_code"`
	Message     string `json:"message"`
	ReferenceID string `json:"reference_id"`
}

type PaymentEnvelopeResponse struct {
	Payment *Payment       `json:"payment"`
	Decline *DeclineDetail `json:"decline,omitempty"`
}

type QueryPaymentsResponse struct {
	Payments   []*Payment      `json:"payments"`
	Summary    *PaymentSummary `json:"summary"`
	NextCursor string          `json:"next_cursor,omitempty"`
	HasNext    bool            `json:"has_next"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
