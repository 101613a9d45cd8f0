package gamecore

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the engine's operational counters and gauges. Pass a
// registry via WithMetrics to enable collection; a nil Metrics is a no-op.
type Metrics struct {
	MessagesAccepted prometheus.Counter
	MessagesRejected *prometheus.CounterVec
	FeesCollectedWei prometheus.Counter
	IterationOrdinal prometheus.Gauge
	CurrentPoolWei   prometheus.Gauge
	Participants     prometheus.Gauge
	TokensMinted     *prometheus.CounterVec
}

// NewMetrics creates and registers the engine metrics on the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		MessagesAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nerix",
			Name:      "messages_accepted_total",
			Help:      "Accepted fee-paying messages.",
		}),
		MessagesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nerix",
			Name:      "messages_rejected_total",
			Help:      "Rejected messages by reason.",
		}, []string{"reason"}),
		FeesCollectedWei: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nerix",
			Name:      "fees_collected_wei_total",
			Help:      "Total fees collected, in wei (float approximation).",
		}),
		IterationOrdinal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nerix",
			Name:      "iteration_ordinal",
			Help:      "Ordinal of the current iteration.",
		}),
		CurrentPoolWei: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nerix",
			Name:      "current_pool_wei",
			Help:      "Current reward pool balance, in wei (float approximation).",
		}),
		Participants: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nerix",
			Name:      "iteration_participants",
			Help:      "Distinct participants of the current iteration.",
		}),
		TokensMinted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nerix",
			Name:      "tokens_minted_total",
			Help:      "Minted NFTs by tier.",
		}, []string{"tier"}),
	}
	reg.MustRegister(
		m.MessagesAccepted,
		m.MessagesRejected,
		m.FeesCollectedWei,
		m.IterationOrdinal,
		m.CurrentPoolWei,
		m.Participants,
		m.TokensMinted,
	)
	return m
}

func (m *Metrics) accepted(feeWei float64) {
	if m == nil {
		return
	}
	m.MessagesAccepted.Inc()
	m.FeesCollectedWei.Add(feeWei)
}

func (m *Metrics) rejected(reason string) {
	if m == nil {
		return
	}
	m.MessagesRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) minted(tier string) {
	if m == nil {
		return
	}
	m.TokensMinted.WithLabelValues(tier).Inc()
}

func (m *Metrics) observeState(ordinal uint32, poolWei float64, participants int) {
	if m == nil {
		return
	}
	m.IterationOrdinal.Set(float64(ordinal))
	m.CurrentPoolWei.Set(poolWei)
	m.Participants.Set(float64(participants))
}
