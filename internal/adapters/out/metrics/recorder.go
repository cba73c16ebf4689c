// Package metrics exposes engine telemetry as Prometheus collectors.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Recorder struct {
	commands      *prometheus.CounterVec
	retries       *prometheus.CounterVec
	notifications *prometheus.CounterVec
	expired       prometheus.Counter
	requests      *prometheus.CounterVec
}

// NewRecorder registers the collectors with reg. Pass prometheus.DefaultRegisterer
// to serve them from promhttp.Handler.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		commands: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "freight_commands_total",
			Help: "Completed commands by name and outcome",
		}, []string{"command", "outcome"}),
		retries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "freight_command_retries_total",
			Help: "Transaction attempts retried after a transient conflict",
		}, []string{"command"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "freight_notification_failures_total",
			Help: "Events the notifier failed to publish",
		}, []string{"event"}),
		expired: factory.NewCounter(prometheus.CounterOpts{
			Name: "freight_offers_expired_total",
			Help: "Pending offers expired by the background job",
		}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "freight_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"method", "route", "code"}),
	}
}

func (r *Recorder) CommandCompleted(name, outcome string) {
	r.commands.WithLabelValues(name, outcome).Inc()
}

func (r *Recorder) CommandRetried(name string) {
	r.retries.WithLabelValues(name).Inc()
}

func (r *Recorder) NotificationFailed(eventType string) {
	r.notifications.WithLabelValues(eventType).Inc()
}

func (r *Recorder) OffersExpired(n int) {
	r.expired.Add(float64(n))
}

func (r *Recorder) RequestServed(method, route string, code int) {
	r.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}
