package store

import (
	"context"
	"testing"
	"time"

	"github.com/JulesSitpach/tradenavigatorpro/internal/pricing"
)

func testResult(id string) *pricing.OptimizationResult {
	return &pricing.OptimizationResult{ID: id, TargetMargin: 20}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if got, err := s.Get(ctx, "missing"); err != nil || got != nil {
		t.Fatalf("miss should be (nil, nil), got %v, %v", got, err)
	}

	if err := s.Put(ctx, "k", testResult("r1"), time.Minute); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got == nil || got.ID != "r1" {
		t.Fatalf("Get = %+v, want r1", got)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Put(ctx, "k", testResult("r1"), -time.Second); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if got, _ := s.Get(ctx, "k"); got != nil {
		t.Fatalf("expired entry should miss, got %+v", got)
	}
}

func TestKeyIsStableAndParameterSensitive(t *testing.T) {
	req := pricing.Request{
		Product:   pricing.ProductCost{Name: "Widget", SKU: "W-1", Category: "HW", CurrentPrice: 100, SalesVolumeCurrent: 10},
		Scenarios: []pricing.ScenarioParameter{{Name: "Base"}},
	}

	if Key(req) != Key(req) {
		t.Fatalf("identical requests must share a key")
	}

	changed := req
	changed.Scenarios = []pricing.ScenarioParameter{{Name: "Base", TariffIncrease: 5}}
	if Key(req) == Key(changed) {
		t.Fatalf("different scenarios must not share a key")
	}
}
