package metrics

import (
	"context"
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export in Prometheus format
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	registry      *promclient.Registry
	collector     Collector

	meter       metric.Meter
	storedGauge metric.Int64ObservableGauge
	operations  metric.Int64Counter
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter backed by its own Prometheus registry
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	registry := promclient.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"bookshelf-api",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		registry:      registry,
		collector:     collector,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.storedGauge, err = oe.meter.Int64ObservableGauge(
		"books.stored",
		metric.WithDescription("Number of books currently in the collection"),
		metric.WithUnit("{books}"),
		metric.WithInt64Callback(oe.observeStored),
	)
	if err != nil {
		return fmt.Errorf("creating stored books gauge: %w", err)
	}

	oe.operations, err = oe.meter.Int64Counter(
		"books.operations",
		metric.WithDescription("Number of book operations by operation and outcome"),
	)
	if err != nil {
		return fmt.Errorf("creating operations counter: %w", err)
	}

	return nil
}

func (oe *OTelExporter) observeStored(ctx context.Context, observer metric.Int64Observer) error {
	count, err := oe.collector.BookCount(ctx)
	if err != nil {
		return err
	}
	observer.Observe(count)
	return nil
}

// RecordOperation implements Recorder
func (oe *OTelExporter) RecordOperation(ctx context.Context, operation, outcome string) {
	oe.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

// Handler serves the registry in the Prometheus exposition format
func (oe *OTelExporter) Handler() http.Handler {
	return promhttp.HandlerFor(oe.registry, promhttp.HandlerOpts{})
}

// Shutdown flushes and stops the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if err := oe.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down meter provider: %w", err)
	}
	return nil
}
