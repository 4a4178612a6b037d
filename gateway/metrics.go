package gateway

import "github.com/prometheus/client_golang/prometheus"

type gatewayMetrics struct {
	tokensFederated  prometheus.Counter
	mediaLookups     prometheus.Counter
	playbacksStarted prometheus.Counter
	vendorErrors     *prometheus.CounterVec
}

func newGatewayMetrics(reg prometheus.Registerer) *gatewayMetrics {
	m := &gatewayMetrics{
		tokensFederated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "camgate",
			Subsystem: "token",
			Name:      "federated_total",
			Help:      "Number of federated session tokens issued to clients",
		}),
		mediaLookups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "camgate",
			Subsystem: "media",
			Name:      "lookups_total",
			Help:      "Number of camera media resolutions served",
		}),
		playbacksStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "camgate",
			Subsystem: "playback",
			Name:      "started_total",
			Help:      "Number of playback bundles handed to players",
		}),
		vendorErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "camgate",
			Subsystem: "vendor",
			Name:      "errors_total",
			Help:      "Vendor API failures by operation",
		}, []string{"operation"}),
	}

	reg.MustRegister(m.tokensFederated, m.mediaLookups, m.playbacksStarted, m.vendorErrors)
	return m
}
