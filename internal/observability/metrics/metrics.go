package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	estimatesCalculated metric.Int64Counter
	adjustmentsApplied  metric.Int64Counter
	adjustmentsRemoved  metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "roofline"
	}
	meter := provider.Meter(name)

	estimatesCalculated, err := meter.Int64Counter("roofline_estimates_calculated_total")
	if err != nil {
		return nil, err
	}
	adjustmentsApplied, err := meter.Int64Counter("roofline_adjustments_applied_total")
	if err != nil {
		return nil, err
	}
	adjustmentsRemoved, err := meter.Int64Counter("roofline_adjustments_removed_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		estimatesCalculated: estimatesCalculated,
		adjustmentsApplied:  adjustmentsApplied,
		adjustmentsRemoved:  adjustmentsRemoved,
	}, nil
}

// RecordEstimateCalculated increments estimate evaluation counts.
func (m *Metrics) RecordEstimateCalculated(ctx context.Context, jobType string) {
	if m == nil {
		return
	}
	m.estimatesCalculated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("job_type", strings.TrimSpace(jobType)),
	))
}

// RecordAdjustmentApplied increments applied ledger record counts.
func (m *Metrics) RecordAdjustmentApplied(ctx context.Context, adjustmentType string) {
	if m == nil {
		return
	}
	m.adjustmentsApplied.Add(ctx, 1, metric.WithAttributes(
		attribute.String("adjustment_type", strings.TrimSpace(adjustmentType)),
	))
}

// RecordAdjustmentRemoved increments removed ledger record counts.
func (m *Metrics) RecordAdjustmentRemoved(ctx context.Context) {
	if m == nil {
		return
	}
	m.adjustmentsRemoved.Add(ctx, 1)
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "", "grpc":
		return otlpmetricgrpc.New(context.Background(),
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	case "http", "http/protobuf":
		return otlpmetrichttp.New(context.Background(),
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unsupported otlp protocol %q", protocol)
	}
}
