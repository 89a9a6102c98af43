package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/marcelsud/elibrary/book"
)

// OTelExporter exports catalog metrics through OpenTelemetry in Prometheus format
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	counter       Counter
	handler       http.Handler

	meter           metric.Meter
	booksGauge      metric.Int64ObservableGauge
	operationsCount metric.Int64Counter
}

type Option func(*exporterOptions)

type exporterOptions struct {
	registry *promclient.Registry
}

// WithRegistry exports into reg instead of the default Prometheus registry
func WithRegistry(reg *promclient.Registry) Option {
	return func(o *exporterOptions) {
		o.registry = reg
	}
}

// NewOTelExporter creates the meter provider and registers the catalog instruments
func NewOTelExporter(counter Counter, opts ...Option) (*OTelExporter, error) {
	var o exporterOptions
	for _, opt := range opts {
		opt(&o)
	}

	var promOpts []prometheus.Option
	handler := promhttp.Handler()
	if o.registry != nil {
		promOpts = append(promOpts, prometheus.WithRegisterer(o.registry))
		handler = promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
	}

	exporter, err := prometheus.New(promOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"elibrary",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		counter:       counter,
		handler:       handler,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.booksGauge, err = oe.meter.Int64ObservableGauge(
		"catalog.books",
		metric.WithDescription("Number of books in the catalog"),
		metric.WithUnit("{books}"),
		metric.WithInt64Callback(oe.observeBooks),
	)
	if err != nil {
		return fmt.Errorf("creating books gauge: %w", err)
	}

	oe.operationsCount, err = oe.meter.Int64Counter(
		"catalog.operations",
		metric.WithDescription("Catalog operations by name and outcome"),
		metric.WithUnit("{operations}"),
	)
	if err != nil {
		return fmt.Errorf("creating operations counter: %w", err)
	}

	return nil
}

func (oe *OTelExporter) observeBooks(ctx context.Context, observer metric.Int64Observer) error {
	n, err := oe.counter.CountBooks(ctx)
	if err != nil {
		return err
	}
	observer.Observe(n)
	return nil
}

// Record counts one finished operation
func (oe *OTelExporter) Record(ctx context.Context, operation string, err error) {
	outcome := OutcomeSuccess
	switch {
	case errors.Is(err, book.ErrNotFound):
		outcome = OutcomeNotFound
	case err != nil:
		outcome = OutcomeError
	}
	oe.operationsCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

// ServeHTTP returns the handler serving Prometheus-formatted metrics
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return oe.handler
}

// Shutdown flushes and stops the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
