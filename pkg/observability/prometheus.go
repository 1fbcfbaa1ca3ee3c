package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements every hook interface with Prometheus collectors.
type Prometheus struct {
	passes       prometheus.Counter
	skipped      prometheus.Counter
	passDuration prometheus.Histogram
	changed      prometheus.Counter
	removed      prometheus.Counter
	generation   prometheus.Gauge

	loads          *prometheus.CounterVec
	loadDuration   prometheus.Histogram
	renderDuration *prometheus.HistogramVec

	cacheEvents *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

var (
	_ EngineHooks   = (*Prometheus)(nil)
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ ServerHooks   = (*Prometheus)(nil)
)

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "xui_layout_passes_total",
			Help: "Completed layout passes.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "xui_layout_passes_skipped_total",
			Help: "Layout requests with nothing to recompute.",
		}),
		passDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "xui_layout_pass_duration_seconds",
			Help:    "Duration of layout passes.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		changed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "xui_layout_transforms_changed_total",
			Help: "Transforms rewritten by layout passes.",
		}),
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "xui_layout_transforms_removed_total",
			Help: "Transforms purged by layout passes.",
		}),
		generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "xui_layout_generation",
			Help: "Generation of the latest layout pass.",
		}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "xui_pipeline_loads_total",
			Help: "Scene loads by result.",
		}, []string{"result"}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "xui_pipeline_load_duration_seconds",
			Help: "Duration of scene loads.",
		}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "xui_pipeline_render_duration_seconds",
			Help: "Duration of render stages by result.",
		}, []string{"result"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "xui_cache_events_total",
			Help: "Cache lookups and writes by key type and event.",
		}, []string{"key_type", "event"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "xui_cache_written_bytes_total",
			Help: "Bytes written to the cache by key type.",
		}, []string{"key_type"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "xui_http_requests_total",
			Help: "Served requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "xui_http_request_duration_seconds",
			Help: "Duration of served requests.",
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		p.passes, p.skipped, p.passDuration, p.changed, p.removed, p.generation,
		p.loads, p.loadDuration, p.renderDuration,
		p.cacheEvents, p.cacheBytes,
		p.requests, p.requestDuration,
	)
	return p
}

func (p *Prometheus) OnPass(_ context.Context, generation uint64, changed, removed int, d time.Duration) {
	p.passes.Inc()
	p.passDuration.Observe(d.Seconds())
	p.changed.Add(float64(changed))
	p.removed.Add(float64(removed))
	p.generation.Set(float64(generation))
}

func (p *Prometheus) OnPassSkipped(context.Context) { p.skipped.Inc() }

func (p *Prometheus) OnLoadStart(context.Context, string) {}

func (p *Prometheus) OnLoadComplete(_ context.Context, _ string, _ int, d time.Duration, err error) {
	p.loads.WithLabelValues(result(err)).Inc()
	p.loadDuration.Observe(d.Seconds())
}

func (p *Prometheus) OnRenderStart(context.Context, []string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	p.renderDuration.WithLabelValues(result(err)).Observe(d.Seconds())
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheEvents.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *Prometheus) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	p.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Register installs p for every hook category.
func (p *Prometheus) Register() {
	SetEngineHooks(p)
	SetPipelineHooks(p)
	SetCacheHooks(p)
	SetServerHooks(p)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
