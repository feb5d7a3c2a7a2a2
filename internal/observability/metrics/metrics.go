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

// Metrics exposes application-level instruments for the billing engine.
type Metrics struct {
	invoicesMinted     metric.Int64Counter
	paymentsReverted   metric.Int64Counter
	reminderRuns       metric.Int64Counter
	notificationsAlive metric.Int64Gauge
	rateLimitAllowed   metric.Int64Counter
	rateLimitDenied    metric.Int64Counter
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
		name = "digimanager"
	}
	meter := provider.Meter(name)

	invoicesMinted, err := meter.Int64Counter("digimanager_invoices_minted_total")
	if err != nil {
		return nil, err
	}
	paymentsReverted, err := meter.Int64Counter("digimanager_payments_reverted_total")
	if err != nil {
		return nil, err
	}
	reminderRuns, err := meter.Int64Counter("digimanager_reminder_runs_total")
	if err != nil {
		return nil, err
	}
	notificationsAlive, err := meter.Int64Gauge("digimanager_notifications_current")
	if err != nil {
		return nil, err
	}
	rateLimitAllowed, err := meter.Int64Counter("digimanager_rate_limit_allowed_total")
	if err != nil {
		return nil, err
	}
	rateLimitDenied, err := meter.Int64Counter("digimanager_rate_limit_denied_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		invoicesMinted:     invoicesMinted,
		paymentsReverted:   paymentsReverted,
		reminderRuns:       reminderRuns,
		notificationsAlive: notificationsAlive,
		rateLimitAllowed:   rateLimitAllowed,
		rateLimitDenied:    rateLimitDenied,
	}, nil
}

// RecordInvoiceMinted increments the ledger-minted invoice count.
func (m *Metrics) RecordInvoiceMinted(ctx context.Context, subscriberKind string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("subscriber_kind", strings.TrimSpace(subscriberKind)))
	m.invoicesMinted.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordPaymentReverted increments the reverted payment count.
func (m *Metrics) RecordPaymentReverted(ctx context.Context, subscriberKind string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("subscriber_kind", strings.TrimSpace(subscriberKind)))
	m.paymentsReverted.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordReminderRun records one reminder recomputation and the resulting
// notification count.
func (m *Metrics) RecordReminderRun(ctx context.Context, notifications int) {
	if m == nil {
		return
	}
	m.reminderRuns.Add(ctx, 1)
	m.notificationsAlive.Record(ctx, int64(notifications))
}

// RecordRateLimitAllowed increments rate limit allow counts.
func (m *Metrics) RecordRateLimitAllowed(ctx context.Context, endpoint string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("endpoint", strings.TrimSpace(endpoint)))
	m.rateLimitAllowed.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRateLimitDenied increments rate limit deny counts.
func (m *Metrics) RecordRateLimitDenied(ctx context.Context, endpoint, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("endpoint", strings.TrimSpace(endpoint)),
		attribute.String("reason", strings.TrimSpace(reason)),
	)
	m.rateLimitDenied.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"subscriber_kind": {},
	"endpoint":        {},
	"status_code":     {},
	"reason":          {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
