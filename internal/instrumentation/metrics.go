package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrTool   = "tool"
	attrStatus = "status"
)

// Metrics provides methods for recording observability metrics.
// The zero value is a no-op recorder: every Record method is safe to call
// on a Metrics with uninitialized instruments.
type Metrics struct {
	// Model endpoint metrics
	modelRequestsTotal   metric.Int64Counter
	modelRequestDuration metric.Float64Histogram

	// Tool dispatch metrics
	toolDispatchesTotal metric.Int64Counter
	toolDuration        metric.Float64Histogram
}

// NewMetrics creates a new Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.modelRequestsTotal, err = meter.Int64Counter(
		"model_requests_total",
		metric.WithDescription("Total number of model endpoint requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create model_requests_total counter: %w", err)
	}

	m.modelRequestDuration, err = meter.Float64Histogram(
		"model_request_duration_seconds",
		metric.WithDescription("Model endpoint request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create model_request_duration_seconds histogram: %w", err)
	}

	m.toolDispatchesTotal, err = meter.Int64Counter(
		"tool_dispatches_total",
		metric.WithDescription("Total number of tool dispatches"),
		metric.WithUnit("{dispatch}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool_dispatches_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"tool_dispatch_duration_seconds",
		metric.WithDescription("Tool dispatch duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool_dispatch_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordModelRequest records one request to the model endpoint.
func (m *Metrics) RecordModelRequest(ctx context.Context, status string, duration time.Duration) {
	if m == nil || m.modelRequestsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(attrStatus, status))
	m.modelRequestsTotal.Add(ctx, 1, attrs)
	m.modelRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordToolDispatch records one tool dispatch.
func (m *Metrics) RecordToolDispatch(ctx context.Context, tool, status string, duration time.Duration) {
	if m == nil || m.toolDispatchesTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	)
	m.toolDispatchesTotal.Add(ctx, 1, attrs)
	m.toolDuration.Record(ctx, duration.Seconds(), attrs)
}
