package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "videogw"

// Metrics holds the gateway's OpenTelemetry metric instruments
type Metrics struct {
	// Render pipeline metrics
	RendersTotal        metric.Int64Counter
	RenderDuration      metric.Float64Histogram
	UpstreamErrorsTotal metric.Int64Counter

	// Proxy metrics
	SignInsTotal       metric.Int64Counter
	SignInFailedTotal  metric.Int64Counter
	SignUpsTotal       metric.Int64Counter
	ListMutationsTotal metric.Int64Counter
	ProxyErrorsTotal   metric.Int64Counter
}

var (
	once    sync.Once
	metrics *Metrics
)

// GetMetrics returns the singleton Metrics instance, initializing it if
// necessary. Before InitTelemetry runs the instruments bind to the global
// no-op meter provider, so recording is always safe.
func GetMetrics() *Metrics {
	once.Do(func() {
		metrics = initMetrics()
	})
	return metrics
}

func initMetrics() *Metrics {
	meter := otel.GetMeterProvider().Meter(meterName)

	m := &Metrics{}

	m.RendersTotal, _ = meter.Int64Counter(
		"videogw.renders.total",
		metric.WithDescription("Total number of pages rendered"),
		metric.WithUnit("{render}"),
	)

	m.RenderDuration, _ = meter.Float64Histogram(
		"videogw.renders.duration",
		metric.WithDescription("Duration of full page renders"),
		metric.WithUnit("ms"),
	)

	m.UpstreamErrorsTotal, _ = meter.Int64Counter(
		"videogw.upstream.errors.total",
		metric.WithDescription("Total number of failed catalog fetches"),
		metric.WithUnit("{error}"),
	)

	m.SignInsTotal, _ = meter.Int64Counter(
		"videogw.signins.total",
		metric.WithDescription("Total number of successful sign-ins"),
		metric.WithUnit("{signin}"),
	)

	m.SignInFailedTotal, _ = meter.Int64Counter(
		"videogw.signins.failed.total",
		metric.WithDescription("Total number of rejected sign-ins"),
		metric.WithUnit("{signin}"),
	)

	m.SignUpsTotal, _ = meter.Int64Counter(
		"videogw.signups.total",
		metric.WithDescription("Total number of accounts created"),
		metric.WithUnit("{signup}"),
	)

	m.ListMutationsTotal, _ = meter.Int64Counter(
		"videogw.listmutations.total",
		metric.WithDescription("Total number of my-list mutations proxied"),
		metric.WithUnit("{mutation}"),
	)

	m.ProxyErrorsTotal, _ = meter.Int64Counter(
		"videogw.proxy.errors.total",
		metric.WithDescription("Total number of proxy calls that failed upstream"),
		metric.WithUnit("{error}"),
	)

	return m
}
