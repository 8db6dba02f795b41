package repository

import (
	"errors"
	"reflect"
	"testing"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"github.com/bigs-im/pg-gateway/app/entity"
)

func TestFilterConditionsEmpty(t *testing.T) {
	conditions, args := filterConditions(nil, nil, nil, nil)
	if len(conditions) != 0 {
		t.Fatalf("unexpected conditions %v", conditions)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestFilterConditionsAll(t *testing.T) {
	partnerID := int64(2)
	status := entity.PaymentStatusApproved
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	conditions, args := filterConditions(&partnerID, &status, &from, &to)

	wantConditions := []string{
		"partner_id = ?",
		"status = ?",
		"created_at >= ?",
		"created_at <= ?",
	}
	if !reflect.DeepEqual(conditions, wantConditions) {
		t.Fatalf("unexpected conditions %v", conditions)
	}

	wantArgs := []interface{}{int64(2), "APPROVED", from, to}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestFilterConditionsPartial(t *testing.T) {
	status := entity.PaymentStatusDeclined

	conditions, args := filterConditions(nil, &status, nil, nil)

	if len(conditions) != 1 || conditions[0] != "status = ?" {
		t.Fatalf("unexpected conditions %v", conditions)
	}
	if len(args) != 1 || args[0] != "DECLINED" {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestIsDuplicateEntryError(t *testing.T) {
	dup := &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry"}
	if !isDuplicateEntryError(dup) {
		t.Fatal("expected duplicate entry detection")
	}
	if !isDuplicateEntryError(errors.Join(errors.New("exec"), dup)) {
		t.Fatal("expected duplicate entry detection through wrapping")
	}
	if isDuplicateEntryError(&mysqlDriver.MySQLError{Number: 1452}) {
		t.Fatal("did not expect duplicate entry for other mysql error")
	}
	if isDuplicateEntryError(errors.New("connection refused")) {
		t.Fatal("did not expect duplicate entry for plain error")
	}
}

func TestDecimalPtrFromNull(t *testing.T) {
	if got := decimalPtrFromNull(decimal.NullDecimal{}); got != nil {
		t.Fatalf("expected nil for invalid value, got %v", got)
	}

	value := decimal.NullDecimal{Decimal: decimal.NewFromInt(100), Valid: true}
	got := decimalPtrFromNull(value)
	if got == nil || !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected value %v", got)
	}
}

func TestTimePtrValue(t *testing.T) {
	if got := timePtrValue(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if got := timePtrValue(&now); got != now {
		t.Fatalf("unexpected value %v", got)
	}
}
