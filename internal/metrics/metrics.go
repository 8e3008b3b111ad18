package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks federation and delivery counters.
type Metrics struct {
	DeliveriesLocal  prometheus.Counter
	DeliveriesRemote *prometheus.CounterVec

	DiscoveryFetches *prometheus.CounterVec
	KeyRotations     prometheus.Counter

	InboundVerifications *prometheus.CounterVec

	QueueCompactions prometheus.Counter
	VaultConflicts   prometheus.Counter
}

// New creates and registers the courier metrics on registry (the default
// registerer when nil).
func New(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	return &Metrics{
		DeliveriesLocal: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "courier_deliveries_local_total",
			Help: "Messages delivered into a local recipient queue",
		}),
		DeliveriesRemote: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "courier_deliveries_remote_total",
			Help: "Messages relayed to remote hosts, by outcome",
		}, []string{"outcome"}),
		DiscoveryFetches: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "courier_discovery_fetches_total",
			Help: "Discovery document fetches, by outcome",
		}, []string{"outcome"}),
		KeyRotations: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "courier_key_rotations_total",
			Help: "Authenticated remote key rotations applied",
		}),
		InboundVerifications: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "courier_inbound_verifications_total",
			Help: "Inbound federation signature checks, by result",
		}, []string{"result"}),
		QueueCompactions: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "courier_queue_compactions_total",
			Help: "Queue items superseded by compaction",
		}),
		VaultConflicts: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "courier_vault_conflicts_total",
			Help: "Vault updates rejected with a version conflict",
		}),
	}
}
