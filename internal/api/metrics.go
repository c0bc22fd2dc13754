package api

import (
	"fmt"
	"net/http"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"itemd/internal/version"
)

// MetricsCollector collects and exposes Prometheus metrics
type MetricsCollector struct {
	// Counters
	requestsTotal *Counter

	// Histograms
	requestDuration *Histogram

	// Gauges
	itemsTotal    *Gauge
	itemsCapacity *Gauge
	goroutines    *Gauge
	memoryAlloc   *Gauge

	startTime time.Time
}

// Counter is a monotonically increasing counter
type Counter struct {
	name   string
	help   string
	labels []string
	values sync.Map // map[string]*uint64
}

// Histogram tracks distributions of values
type Histogram struct {
	name    string
	help    string
	labels  []string
	buckets []float64
	values  sync.Map // map[string]*histogramValue
}

type histogramValue struct {
	mu      sync.Mutex
	sum     float64
	count   uint64
	buckets []uint64
}

// Gauge is a metric that can go up and down
type Gauge struct {
	name   string
	help   string
	labels []string
	values sync.Map // map[string]*float64
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector() *MetricsCollector {
	m := &MetricsCollector{
		startTime: time.Now(),
	}

	m.requestsTotal = &Counter{
		name:   "itemd_requests_total",
		help:   "Total number of HTTP requests handled",
		labels: []string{"method", "path", "status"},
	}

	m.requestDuration = &Histogram{
		name:    "itemd_request_duration_seconds",
		help:    "Duration of HTTP requests in seconds",
		labels:  []string{"method", "path"},
		buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}

	m.itemsTotal = &Gauge{
		name:   "itemd_items_total",
		help:   "Number of items currently stored",
		labels: []string{},
	}

	m.itemsCapacity = &Gauge{
		name:   "itemd_items_capacity",
		help:   "Maximum number of items the store holds",
		labels: []string{},
	}

	m.goroutines = &Gauge{
		name:   "itemd_goroutines",
		help:   "Number of goroutines",
		labels: []string{},
	}

	m.memoryAlloc = &Gauge{
		name:   "itemd_memory_alloc_bytes",
		help:   "Allocated memory in bytes",
		labels: []string{},
	}

	return m
}

// RecordRequest records a handled HTTP request
func (m *MetricsCollector) RecordRequest(method, path string, status int, duration time.Duration) {
	normalized := normalizePath(path)
	m.requestsTotal.Inc(method, normalized, strconv.Itoa(status))
	m.requestDuration.Observe(duration.Seconds(), method, normalized)
}

// SetItems records the current store fill level
func (m *MetricsCollector) SetItems(count, capacity int) {
	m.itemsTotal.Set(float64(count))
	m.itemsCapacity.Set(float64(capacity))
}

// normalizePath collapses per-item paths into one label and buckets
// everything unrecognized under "other" so label cardinality stays
// bounded.
func normalizePath(path string) string {
	switch path {
	case rootPath, itemsPath, healthPath, readyPath, metricsPath:
		return path
	}
	if strings.HasPrefix(path, itemsPrefix) && path != itemsPrefix {
		return itemsPrefix + "{id}"
	}
	return "other"
}

// WritePrometheus writes metrics in Prometheus text format
func (m *MetricsCollector) WritePrometheus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	// Update runtime metrics
	m.goroutines.Set(float64(runtime.NumGoroutine()))
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	m.memoryAlloc.Set(float64(memStats.Alloc))

	// Write process info
	fmt.Fprintf(w, "# HELP itemd_info itemd build information\n")
	fmt.Fprintf(w, "# TYPE itemd_info gauge\n")
	fmt.Fprintf(w, "itemd_info{version=\"%s\"} 1\n\n", version.Version)

	// Write uptime
	fmt.Fprintf(w, "# HELP itemd_uptime_seconds Time since itemd started\n")
	fmt.Fprintf(w, "# TYPE itemd_uptime_seconds counter\n")
	fmt.Fprintf(w, "itemd_uptime_seconds %.3f\n\n", time.Since(m.startTime).Seconds())

	// Write counters
	m.writeCounter(w, m.requestsTotal)

	// Write histograms
	m.writeHistogram(w, m.requestDuration)

	// Write gauges
	m.writeGauge(w, m.itemsTotal)
	m.writeGauge(w, m.itemsCapacity)
	m.writeGauge(w, m.goroutines)
	m.writeGauge(w, m.memoryAlloc)
}

func (m *MetricsCollector) writeCounter(w http.ResponseWriter, c *Counter) {
	fmt.Fprintf(w, "# HELP %s %s\n", c.name, c.help)
	fmt.Fprintf(w, "# TYPE %s counter\n", c.name)

	var keys []string
	c.values.Range(func(key, value interface{}) bool {
		keys = append(keys, key.(string))
		return true
	})
	sort.Strings(keys)

	for _, key := range keys {
		val, _ := c.values.Load(key)
		if ptr, ok := val.(*uint64); ok {
			fmt.Fprintf(w, "%s%s %d\n", c.name, key, atomic.LoadUint64(ptr))
		}
	}
	fmt.Fprintln(w)
}

func (m *MetricsCollector) writeHistogram(w http.ResponseWriter, h *Histogram) {
	fmt.Fprintf(w, "# HELP %s %s\n", h.name, h.help)
	fmt.Fprintf(w, "# TYPE %s histogram\n", h.name)

	var keys []string
	h.values.Range(func(key, value interface{}) bool {
		keys = append(keys, key.(string))
		return true
	})
	sort.Strings(keys)

	for _, key := range keys {
		val, _ := h.values.Load(key)
		if hv, ok := val.(*histogramValue); ok {
			hv.mu.Lock()
			// Write bucket counts
			cumulative := uint64(0)
			for i, bucket := range h.buckets {
				cumulative += hv.buckets[i]
				bucketLabel := key
				if bucketLabel != "" {
					bucketLabel = bucketLabel[:len(bucketLabel)-1] + fmt.Sprintf(",le=\"%.3f\"}", bucket)
				} else {
					bucketLabel = fmt.Sprintf("{le=\"%.3f\"}", bucket)
				}
				fmt.Fprintf(w, "%s_bucket%s %d\n", h.name, bucketLabel, cumulative)
			}
			// +Inf bucket
			cumulative += hv.buckets[len(h.buckets)]
			infLabel := key
			if infLabel != "" {
				infLabel = infLabel[:len(infLabel)-1] + ",le=\"+Inf\"}"
			} else {
				infLabel = "{le=\"+Inf\"}"
			}
			fmt.Fprintf(w, "%s_bucket%s %d\n", h.name, infLabel, cumulative)

			// Sum and count
			fmt.Fprintf(w, "%s_sum%s %.6f\n", h.name, key, hv.sum)
			fmt.Fprintf(w, "%s_count%s %d\n", h.name, key, hv.count)
			hv.mu.Unlock()
		}
	}
	fmt.Fprintln(w)
}

func (m *MetricsCollector) writeGauge(w http.ResponseWriter, g *Gauge) {
	fmt.Fprintf(w, "# HELP %s %s\n", g.name, g.help)
	fmt.Fprintf(w, "# TYPE %s gauge\n", g.name)

	var keys []string
	g.values.Range(func(key, value interface{}) bool {
		keys = append(keys, key.(string))
		return true
	})
	sort.Strings(keys)

	for _, key := range keys {
		val, _ := g.values.Load(key)
		if ptr, ok := val.(*float64); ok {
			fmt.Fprintf(w, "%s%s %.6f\n", g.name, key, *ptr)
		}
	}
	fmt.Fprintln(w)
}

// Counter methods
func (c *Counter) Inc(labelValues ...string) {
	c.Add(1, labelValues...)
}

func (c *Counter) Add(delta uint64, labelValues ...string) {
	key := c.labelsToKey(labelValues)
	val, _ := c.values.LoadOrStore(key, new(uint64))
	atomic.AddUint64(val.(*uint64), delta)
}

func (c *Counter) labelsToKey(values []string) string {
	if len(c.labels) == 0 || len(values) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(c.labels))
	for i, label := range c.labels {
		if i < len(values) {
			pairs = append(pairs, fmt.Sprintf("%s=\"%s\"", label, values[i]))
		}
	}
	return "{" + strings.Join(pairs, ",") + "}"
}

// Histogram methods
func (h *Histogram) Observe(value float64, labelValues ...string) {
	key := h.labelsToKey(labelValues)

	val, _ := h.values.LoadOrStore(key, &histogramValue{
		buckets: make([]uint64, len(h.buckets)+1), // +1 for +Inf
	})

	hv := val.(*histogramValue)

	hv.mu.Lock()
	defer hv.mu.Unlock()

	hv.sum += value
	hv.count++

	// Find bucket
	bucketIdx := len(h.buckets) // Default to +Inf
	for i, bound := range h.buckets {
		if value <= bound {
			bucketIdx = i
			break
		}
	}
	hv.buckets[bucketIdx]++
}

func (h *Histogram) labelsToKey(values []string) string {
	if len(h.labels) == 0 || len(values) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(h.labels))
	for i, label := range h.labels {
		if i < len(values) {
			pairs = append(pairs, fmt.Sprintf("%s=\"%s\"", label, values[i]))
		}
	}
	return "{" + strings.Join(pairs, ",") + "}"
}

// Gauge methods
func (g *Gauge) Set(value float64, labelValues ...string) {
	key := g.labelsToKey(labelValues)
	ptr := new(float64)
	*ptr = value
	g.values.Store(key, ptr)
}

func (g *Gauge) labelsToKey(values []string) string {
	if len(g.labels) == 0 || len(values) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(g.labels))
	for i, label := range g.labels {
		if i < len(values) {
			pairs = append(pairs, fmt.Sprintf("%s=\"%s\"", label, values[i]))
		}
	}
	return "{" + strings.Join(pairs, ",") + "}"
}

// handleMetrics handles the /metrics endpoint
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.metrics == nil {
		http.Error(w, "Metrics not enabled", http.StatusNotImplemented)
		return
	}

	s.metrics.SetItems(s.store.Len(), s.store.Capacity())
	s.metrics.WritePrometheus(w)
}
