package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	UDPCommands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "udp_commands_total",
			Help: "UDP commands sent to the backend server",
		},
		[]string{"verb", "status"}, // status: ok|timeout|net_error
	)
	UDPCommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "udp_command_duration_seconds",
			Help:    "Round-trip duration of UDP commands",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"verb"},
	)
)

var (
	CheckoutLines = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_lines_total",
			Help: "Checkout order lines by outcome",
		},
		[]string{"result"}, // ok|failed
	)
	OrderEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_events_published_total",
			Help: "Order-placed events published to Kafka",
		},
		[]string{"result"}, // ok|failed
	)
)

var SessionCount = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "sessions_active",
		Help: "Number of live sessions in the in-memory store",
	},
)

var registerOnce sync.Once

// MustRegister регистрирует метрики; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			UDPCommands, UDPCommandDuration,
			CheckoutLines, OrderEvents,
			SessionCount,
		)
	})
}
