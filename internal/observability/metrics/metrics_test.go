package metrics

import (
	"context"
	"testing"
)

func TestNewProviderDisabledReturnsNoop(t *testing.T) {
	provider, err := NewProvider(nil, Config{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if provider == nil {
		t.Fatal("expected a provider")
	}

	m, err := New(Config{}, provider)
	if err != nil {
		t.Fatalf("expected instruments on the noop provider, got %v", err)
	}

	ctx := context.Background()
	m.RecordEstimateCalculated(ctx, "repair")
	m.RecordAdjustmentApplied(ctx, "discount_percent")
	m.RecordAdjustmentRemoved(ctx)
}

func TestNewProviderRejectsUnknownProtocol(t *testing.T) {
	_, err := NewProvider(nil, Config{
		Enabled:          true,
		ExporterProtocol: "carrier-pigeon",
	}, nil)
	if err == nil {
		t.Fatal("expected an error for an unknown protocol")
	}
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordEstimateCalculated(ctx, "full_replacement")
	m.RecordAdjustmentApplied(ctx, "price_override")
	m.RecordAdjustmentRemoved(ctx)
}
