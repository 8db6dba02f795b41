package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bigs-im/pg-gateway/app/entity"
)

type fakeProvider struct {
	name     string
	supports func(partnerID int64) bool
}

func (p *fakeProvider) Name() string                 { return p.name }
func (p *fakeProvider) Supports(partnerID int64) bool { return p.supports(partnerID) }

func (p *fakeProvider) Approve(_ context.Context, _ *ApproveRequest) (*ApproveResult, error) {
	return &ApproveResult{
		ApprovalCode: p.name + "-code",
		ApprovedAt:   time.Now().UTC(),
		Status:       entity.PaymentStatusApproved,
	}, nil
}

func TestRegistryDispatchIsDeterministic(t *testing.T) {
	even := &fakeProvider{name: "even", supports: func(id int64) bool { return id%2 == 0 }}
	odd := &fakeProvider{name: "odd", supports: func(id int64) bool { return id%2 != 0 }}
	registry := NewRegistry(even, odd)

	for i := 0; i < 10; i++ {
		selected, err := registry.ForPartner(4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if selected.Name() != "even" {
			t.Fatalf("expected even provider, got %s", selected.Name())
		}
	}

	selected, err := registry.ForPartner(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if selected.Name() != "odd" {
		t.Fatalf("expected odd provider, got %s", selected.Name())
	}
}

func TestRegistryFirstMatchWinsInRegistrationOrder(t *testing.T) {
	first := &fakeProvider{name: "first", supports: func(int64) bool { return true }}
	second := &fakeProvider{name: "second", supports: func(int64) bool { return true }}
	registry := NewRegistry(first, second)

	selected, err := registry.ForPartner(12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if selected.Name() != "first" {
		t.Fatalf("expected first registered provider, got %s", selected.Name())
	}
}

func TestRegistryNoProviderAvailable(t *testing.T) {
	none := &fakeProvider{name: "none", supports: func(int64) bool { return false }}
	registry := NewRegistry(none)

	_, err := registry.ForPartner(3)
	if !errors.Is(err, ErrNoProvider) {
		t.Fatalf("expected ErrNoProvider, got %v", err)
	}
}

func TestRegistryEmpty(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.ForPartner(1); !errors.Is(err, ErrNoProvider) {
		t.Fatalf("expected ErrNoProvider, got %v", err)
	}
}
