package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics is safe to use through a nil pointer; every recorder is then a no-op.
type Metrics struct {
	HTTPRequests     metric.Int64Counter
	HTTPDuration     metric.Float64Histogram
	DocumentLoads    metric.Int64Counter
	DocumentSaves    metric.Int64Counter
	DocumentResets   metric.Int64Counter
	DocumentFailures metric.Int64Counter
}

func Setup(serviceName string) (*Metrics, http.Handler, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	m := &Metrics{}

	m.HTTPRequests, err = meter.Int64Counter(
		"blog_http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.HTTPDuration, err = meter.Float64Histogram(
		"blog_http_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.DocumentLoads, err = meter.Int64Counter(
		"blog_documents_loaded_total",
		metric.WithDescription("Total number of document loads"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.DocumentSaves, err = meter.Int64Counter(
		"blog_documents_saved_total",
		metric.WithDescription("Total number of document saves"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.DocumentResets, err = meter.Int64Counter(
		"blog_documents_reset_total",
		metric.WithDescription("Documents reinitialized because they were missing or unreadable"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.DocumentFailures, err = meter.Int64Counter(
		"blog_documents_save_failures_total",
		metric.WithDescription("Total number of failed document saves"),
	)
	if err != nil {
		return nil, nil, err
	}

	return m, promhttp.Handler(), nil
}

func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status", status),
	)

	m.HTTPRequests.Add(ctx, 1, labels)
	m.HTTPDuration.Record(ctx, duration.Seconds(), labels)
}

func (m *Metrics) RecordDocumentLoad(ctx context.Context, document string) {
	if m == nil {
		return
	}
	m.DocumentLoads.Add(ctx, 1, metric.WithAttributes(attribute.String("document", document)))
}

func (m *Metrics) RecordDocumentSave(ctx context.Context, document string, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("document", document))
	if err != nil {
		m.DocumentFailures.Add(ctx, 1, attrs)
		return
	}
	m.DocumentSaves.Add(ctx, 1, attrs)
}

func (m *Metrics) RecordDocumentReset(ctx context.Context, document, reason string) {
	if m == nil {
		return
	}
	m.DocumentResets.Add(ctx, 1, metric.WithAttributes(
		attribute.String("document", document),
		attribute.String("reason", reason),
	))
}
