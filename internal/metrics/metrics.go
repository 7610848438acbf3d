package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bookshelf"

var (
	registerOnce sync.Once

	lookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "metadata_lookups_total",
		Help:      "ISBN metadata lookups by source and outcome",
	}, []string{"source", "outcome"})
	translations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "title_translations_total",
		Help:      "Title translation attempts by provider and outcome",
	}, []string{"provider", "outcome"})
	additions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_additions_total",
		Help:      "Catalog additions by flow and outcome",
	}, []string{"flow", "outcome"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status code",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"route", "status"})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(lookups, translations, additions, httpDuration)
	})
}

// Outcome label values.
const (
	OutcomeHit      = "hit"
	OutcomeMiss     = "miss"
	OutcomeError    = "error"
	OutcomeSuccess  = "success"
	OutcomeCreated  = "created"
	OutcomeExisting = "already_exists"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "lookup_failed"
)

func IncLookup(source, outcome string)        { lookups.WithLabelValues(source, outcome).Inc() }
func IncTranslation(provider, outcome string) { translations.WithLabelValues(provider, outcome).Inc() }
func IncAddition(flow, outcome string)        { additions.WithLabelValues(flow, outcome).Inc() }

func ObserveHTTPRequest(route string, status int, d time.Duration) {
	httpDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}
