package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dagmal_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code",
		},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dagmal_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	Claims = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dagmal_deal_claims_total",
			Help: "Deal claim attempts by outcome",
		},
		[]string{"outcome"},
	)
	PopularRefreshDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dagmal_popular_refresh_duration_seconds",
			Help:    "Time spent recomputing the popular deals ranking",
			Buckets: prometheus.DefBuckets,
		},
	)
	DealsAvailable = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dagmal_deals_available",
			Help: "Deals redeemable at the last popular refresh",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, Claims, PopularRefreshDuration, DealsAvailable)
}
