package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics defines our Prometheus metrics
type Metrics struct {
	ActiveRooms       prometheus.Gauge
	ConnectedSessions prometheus.Gauge
	EventsTotal       *prometheus.CounterVec
	SyncRejections    prometheus.Counter
	DroppedFrames     prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ActiveRooms: factory.NewGauge(prometheus.GaugeOpts{
			Name: "movieroom_rooms_active",
			Help: "Number of rooms currently alive.",
		}),
		ConnectedSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "movieroom_sessions_connected",
			Help: "Number of open websocket sessions.",
		}),
		EventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "movieroom_events_total",
			Help: "Inbound realtime events processed, by type.",
		}, []string{"type"}),
		SyncRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "movieroom_sync_rejections_total",
			Help: "Playback sync attempts rejected because the sender was not host.",
		}),
		DroppedFrames: factory.NewCounter(prometheus.CounterOpts{
			Name: "movieroom_dropped_frames_total",
			Help: "Outbound frames dropped because a client buffer was full.",
		}),
	}
}
