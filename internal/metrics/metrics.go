package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingsTotal counts booking attempts by outcome: booked,
	// not_available, not_found, duplicate, full, code_conflict, error.
	BookingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentormatch_bookings_total",
		Help: "Booking attempts by outcome",
	}, []string{"outcome"})

	ReservationsExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mentormatch_reservations_expired_total",
		Help: "Reservations transitioned to Expired by the sweeper",
	})

	OfferingsReopenedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mentormatch_offerings_reopened_total",
		Help: "Offerings reopened after expired reservations freed seats",
	})

	SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mentormatch_expiry_sweep_duration_seconds",
		Help:    "Duration of expiry sweep runs",
		Buckets: prometheus.DefBuckets,
	})

	ReconcileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mentormatch_status_reconcile_duration_seconds",
		Help:    "Duration of status reconciliation runs",
		Buckets: prometheus.DefBuckets,
	})

	ReconcileErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mentormatch_reconcile_errors_total",
		Help: "Per-offering errors during background runs",
	})
)
