// Package instrumentation provides OpenTelemetry metrics for the assistant:
// counters and duration histograms for model endpoint requests and tool
// dispatches. Disabled by default; when enabled, metrics are exported via
// the stdout exporter so a CLI process needs no scrape endpoint.
package instrumentation
