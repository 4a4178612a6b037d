package collector

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"camgate/playback"
)

// RefresherCollector exposes the state of the background token
// refresher as gauges so operators can alert before a token lapses.
type RefresherCollector struct {
	Logger    *log.Entry
	refresher *playback.Refresher

	tokenPresent    *prometheus.GaugeVec
	tokenAge        *prometheus.GaugeVec
	tokenValidity   *prometheus.GaugeVec
	refreshInterval *prometheus.GaugeVec
}

func NewRefresherCollector(r *playback.Refresher, l *log.Entry) *RefresherCollector {
	return &RefresherCollector{
		Logger:    l,
		refresher: r,

		tokenPresent: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "camgate",
				Subsystem: "token",
				Name:      "present",
				Help:      "Whether a federated session token is currently held",
			},
			[]string{},
		),
		tokenAge: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "camgate",
				Subsystem: "token",
				Name:      "age_seconds",
				Help:      "Age of the current federated session token",
			},
			[]string{},
		),
		tokenValidity: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "camgate",
				Subsystem: "token",
				Name:      "validity_seconds",
				Help:      "Validity window tokens are requested with",
			},
			[]string{},
		),
		refreshInterval: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "camgate",
				Subsystem: "token",
				Name:      "refresh_interval_seconds",
				Help:      "Interval between background token refreshes",
			},
			[]string{},
		),
	}
}

func (c *RefresherCollector) Describe(ch chan<- *prometheus.Desc) {
	c.tokenPresent.Describe(ch)
	c.tokenAge.Describe(ch)
	c.tokenValidity.Describe(ch)
	c.refreshInterval.Describe(ch)
}

func (c *RefresherCollector) Collect(ch chan<- prometheus.Metric) {
	present := 0.0
	age := 0.0
	if c.refresher.Token() != "" {
		present = 1.0
		age = time.Since(c.refresher.LastRefreshed()).Seconds()
	}

	c.tokenPresent.WithLabelValues().Set(present)
	c.tokenAge.WithLabelValues().Set(age)
	c.tokenValidity.WithLabelValues().Set(c.refresher.Validity().Seconds())
	c.refreshInterval.WithLabelValues().Set(c.refresher.Interval().Seconds())

	c.tokenPresent.Collect(ch)
	c.tokenAge.Collect(ch)
	c.tokenValidity.Collect(ch)
	c.refreshInterval.Collect(ch)
}
