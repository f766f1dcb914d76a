package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal      metric.Int64Counter
	HTTPRequestDuration    metric.Float64Histogram
	TemplateRenderDuration metric.Float64Histogram
	NomadsFetchTotal       metric.Int64Counter
	NomadsFetchFailures    metric.Int64Counter
	NomadsFetchDuration    metric.Float64Histogram
	GistCacheHits          metric.Int64Counter
	GistCacheMisses        metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider, so it must
// run after the providers are installed to export anything.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("jrg-website")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.TemplateRenderDuration, err = meter.Float64Histogram(
			"template_render_duration_seconds",
			metric.WithDescription("Duration of template rendering in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create template_render_duration_seconds: %v", err)
		}

		m.NomadsFetchTotal, err = meter.Int64Counter(
			"nomads_fetch_total",
			metric.WithDescription("Total number of nomads profile fetches"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create nomads_fetch_total: %v", err)
		}

		m.NomadsFetchFailures, err = meter.Int64Counter(
			"nomads_fetch_failures_total",
			metric.WithDescription("Nomads profile fetches that fell back to the empty snapshot"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create nomads_fetch_failures_total: %v", err)
		}

		m.NomadsFetchDuration, err = meter.Float64Histogram(
			"nomads_fetch_duration_seconds",
			metric.WithDescription("Duration of nomads profile fetches in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create nomads_fetch_duration_seconds: %v", err)
		}

		m.GistCacheHits, err = meter.Int64Counter(
			"gist_cache_hits_total",
			metric.WithDescription("Gist content served from cache"),
			metric.WithUnit("{hit}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create gist_cache_hits_total: %v", err)
		}

		m.GistCacheMisses, err = meter.Int64Counter(
			"gist_cache_misses_total",
			metric.WithDescription("Gist content fetched from GitHub"),
			metric.WithUnit("{miss}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create gist_cache_misses_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the global AppMetrics, initializing the instruments against
// the current MeterProvider on first use. Before the providers are
// installed this is the no-op provider, which keeps tests free of setup.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
