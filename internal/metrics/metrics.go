// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cseconnect_http_requests_total",
		Help: "HTTP requests served, by route and status.",
	}, []string{"method", "path", "status"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cseconnect_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	smsSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cseconnect_sms_sent_total",
		Help: "Broadcast text messages accepted by the gateway.",
	})

	smsFailedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cseconnect_sms_failed_total",
		Help: "Broadcast text messages rejected by the gateway.",
	})

	broadcastsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cseconnect_broadcasts_total",
		Help: "Broadcasts by recorded sms status.",
	}, []string{"status"})

	reactionTogglesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cseconnect_reaction_toggles_total",
		Help: "Committed reaction toggles.",
	})

	accessDecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cseconnect_access_decisions_total",
		Help: "Allowlist decisions by outcome.",
	}, []string{"decision"})

	liveSubscriptions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cseconnect_live_subscriptions",
		Help: "Open live subscription sockets.",
	})
)

// MustRegister registers the package collectors once.
func MustRegister(registerer prometheus.Registerer) {
	registerOnce.Do(func() {
		registerer.MustRegister(
			httpRequestsTotal,
			httpRequestDuration,
			smsSentTotal,
			smsFailedTotal,
			broadcastsTotal,
			reactionTogglesTotal,
			accessDecisionsTotal,
			liveSubscriptions,
		)
	})
}

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// GinMiddleware records count and latency per matched route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func SMSDelivered(sent, failed int) {
	smsSentTotal.Add(float64(sent))
	smsFailedTotal.Add(float64(failed))
}

func Broadcast(status string) {
	broadcastsTotal.WithLabelValues(status).Inc()
}

func ReactionToggled() {
	reactionTogglesTotal.Inc()
}

func AccessDecision(decision string) {
	accessDecisionsTotal.WithLabelValues(decision).Inc()
}

// LiveOpened increments the open-subscription gauge and returns its undo.
func LiveOpened() func() {
	liveSubscriptions.Inc()
	return liveSubscriptions.Dec
}
