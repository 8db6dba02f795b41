package types

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/bigs-im/pg-gateway/app/entity"
)

func newJSONContext(t *testing.T, method, target, body string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestNewCreatePaymentRequestParsesDecimalAmount(t *testing.T) {
	ctx := newJSONContext(t, "POST", "/payments", `{"partner_id":2,"amount":"10000","card_number":"1111-2222-3333-4444","birth_date":"19900101","expiry":"1227","password":"12"}`)

	req, err := NewCreatePaymentRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if !req.Amount.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("unexpected amount %s", req.Amount)
	}
}

func TestNewCreatePaymentRequestDefaultsSandboxCard(t *testing.T) {
	ctx := newJSONContext(t, "POST", "/payments", `{"partner_id":2,"amount":1000}`)

	req, err := NewCreatePaymentRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.CardNumber != SandboxCardNumber {
		t.Fatalf("expected sandbox card number, got %q", req.CardNumber)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestCreatePaymentRequestValidate(t *testing.T) {
	cases := []struct {
		name string
		req  CreatePaymentRequest
	}{
		{"missing partner", CreatePaymentRequest{Amount: decimal.NewFromInt(100), CardNumber: "1", BirthDate: "1", Expiry: "1", Password: "1"}},
		{"zero amount", CreatePaymentRequest{PartnerID: 2, CardNumber: "1", BirthDate: "1", Expiry: "1", Password: "1"}},
		{"negative amount", CreatePaymentRequest{PartnerID: 2, Amount: decimal.NewFromInt(-5), CardNumber: "1", BirthDate: "1", Expiry: "1", Password: "1"}},
		{"missing card", CreatePaymentRequest{PartnerID: 2, Amount: decimal.NewFromInt(100), BirthDate: "1", Expiry: "1", Password: "1"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.req.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestNewQueryPaymentsRequestParsesFilters(t *testing.T) {
	ctx := newJSONContext(t, "GET", "/payments?partner_id=2&status=approved&from=2024-01-01T00:00:00Z&to=2024-12-31T23:59:59Z&cursor=abc&limit=5", "")

	req, err := NewQueryPaymentsRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	if req.PartnerID == nil || *req.PartnerID != 2 {
		t.Fatalf("unexpected partner id %+v", req.PartnerID)
	}
	if req.Status == nil || *req.Status != entity.PaymentStatusApproved {
		t.Fatalf("unexpected status %+v", req.Status)
	}
	if req.From == nil || !req.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected from %+v", req.From)
	}
	if req.Cursor != "abc" {
		t.Fatalf("unexpected cursor %q", req.Cursor)
	}
	if req.Limit != 5 {
		t.Fatalf("unexpected limit %d", req.Limit)
	}
}

func TestNewQueryPaymentsRequestEmptyFiltersAreNil(t *testing.T) {
	ctx := newJSONContext(t, "GET", "/payments", "")

	req, err := NewQueryPaymentsRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.PartnerID != nil || req.Status != nil || req.From != nil || req.To != nil {
		t.Fatalf("expected nil filters, got %+v", req)
	}
}

func TestNewQueryPaymentsRequestRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"bad partner": "/payments?partner_id=abc",
		"bad status":  "/payments?status=PENDING",
		"bad from":    "/payments?from=yesterday",
		"bad to":      "/payments?to=tomorrow",
		"bad limit":   "/payments?limit=many",
	}

	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := newJSONContext(t, "GET", target, "")
			if _, err := NewQueryPaymentsRequestFromContext(ctx); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestQueryPaymentsRequestValidateDateRange(t *testing.T) {
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	req := &QueryPaymentsRequest{From: &from, To: &to}
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for inverted range")
	}
}
