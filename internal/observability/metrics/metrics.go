// Package metrics configures the OTel meter provider and the application's
// domain instruments.
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
	invoicesCreated  metric.Int64Counter
	paymentsRecorded metric.Int64Counter
	ledgerStatements metric.Int64Counter
	pdfRenders       metric.Int64Counter
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
		name = "saral"
	}
	meter := provider.Meter(name)

	invoicesCreated, err := meter.Int64Counter("saral_invoices_created_total")
	if err != nil {
		return nil, err
	}
	paymentsRecorded, err := meter.Int64Counter("saral_payments_recorded_total")
	if err != nil {
		return nil, err
	}
	ledgerStatements, err := meter.Int64Counter("saral_ledger_statements_total")
	if err != nil {
		return nil, err
	}
	pdfRenders, err := meter.Int64Counter("saral_pdf_renders_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		invoicesCreated:  invoicesCreated,
		paymentsRecorded: paymentsRecorded,
		ledgerStatements: ledgerStatements,
		pdfRenders:       pdfRenders,
	}, nil
}

// RecordInvoiceCreated increments invoice creation counts per jurisdiction.
func (m *Metrics) RecordInvoiceCreated(ctx context.Context, jurisdiction string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("jurisdiction", strings.TrimSpace(jurisdiction)))
	m.invoicesCreated.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordPaymentRecorded increments payment counts per mode.
func (m *Metrics) RecordPaymentRecorded(ctx context.Context, mode string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("mode", strings.TrimSpace(mode)))
	m.paymentsRecorded.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordLedgerStatement increments ledger statement counts per output format.
func (m *Metrics) RecordLedgerStatement(ctx context.Context, format string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("format", strings.TrimSpace(format)))
	m.ledgerStatements.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordPDFRender increments PDF render counts per document type.
func (m *Metrics) RecordPDFRender(ctx context.Context, document string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("document", strings.TrimSpace(document)))
	m.pdfRenders.Add(ctx, 1, metric.WithAttributes(attrs...))
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
	"jurisdiction": {},
	"mode":         {},
	"format":       {},
	"document":     {},
	"endpoint":     {},
	"status_code":  {},
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
