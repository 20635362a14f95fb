package service

import (
	"context"
	"fmt"
	"time"

	"mentormatch/internal/logger"
	"mentormatch/internal/metrics"
	"mentormatch/internal/models"

	"github.com/prometheus/client_golang/prometheus"
)

// LifecycleService owns the two background recomputations: expiring
// lapsed reservations and deriving offering flags from ground truth.
// Both are idempotent and safe to invoke on demand; the jobs binary
// just wraps them in tickers.
type LifecycleService struct {
	tx           TxRunner
	offerings    OfferingStore
	reservations ReservationStore
	publisher    Publisher
	now          func() time.Time
}

func NewLifecycleService(tx TxRunner, offerings OfferingStore, reservations ReservationStore, publisher Publisher) *LifecycleService {
	return &LifecycleService{
		tx:           tx,
		offerings:    offerings,
		reservations: reservations,
		publisher:    publisher,
		now:          time.Now,
	}
}

// RunExpirySweep expires every unpaid reservation past its deadline and
// reopens offerings whose committed count dropped below capacity.
// Re-running with nothing to expire is a no-op.
func (s *LifecycleService) RunExpirySweep(ctx context.Context) error {
	timer := prometheus.NewTimer(metrics.SweepDuration)
	defer timer.ObserveDuration()

	now := s.now()

	touched, err := s.reservations.ExpireLapsed(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to expire lapsed reservations: %w", err)
	}

	if len(touched) == 0 {
		logger.Get().Debug("No lapsed reservations found")
		return nil
	}

	total := 0
	for _, count := range touched {
		total += count
	}
	metrics.ReservationsExpiredTotal.Add(float64(total))

	logger.Get().Info("Expired lapsed reservations",
		"reservations", total,
		"offerings", len(touched))

	// One offering's failure must not abort the rest of the run.
	for offeringID, count := range touched {
		if err := s.reopenIfBelowCapacity(ctx, offeringID); err != nil {
			metrics.ReconcileErrorsTotal.Inc()
			logger.Get().Error("Failed to reopen offering after expiry",
				"error", err,
				"offering_id", offeringID)
			continue
		}

		s.publish(ctx, models.EventReservationExpired, models.ReservationExpiredEvent{
			OfferingID: offeringID,
			Count:      count,
			Timestamp:  now,
		})
	}

	return nil
}

// reopenIfBelowCapacity restores availability for one offering, reading
// the committed count and writing the flag under the offering's row
// lock so a concurrent booking cannot invalidate the read. Offerings
// past their end boundary are never resurrected.
func (s *LifecycleService) reopenIfBelowCapacity(ctx context.Context, offeringID string) error {
	var reopened bool
	var committed, capacity int

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		offering, err := s.offerings.GetForUpdate(ctx, offeringID)
		if err != nil {
			return err
		}
		if offering == nil {
			return nil
		}
		if s.now().After(offering.EndBoundary()) {
			return nil
		}

		committed, err = s.reservations.CountCommitted(ctx, offeringID)
		if err != nil {
			return err
		}
		capacity = offering.MaxParticipants

		if committed < capacity && !offering.IsAvailable {
			if err := s.offerings.SetAvailability(ctx, offeringID, true); err != nil {
				return err
			}
			reopened = true
		}
		return nil
	})
	if err != nil {
		return err
	}

	if reopened {
		metrics.OfferingsReopenedTotal.Inc()
		s.publish(ctx, models.EventOfferingReopened, models.OfferingReopenedEvent{
			OfferingID: offeringID,
			Committed:  committed,
			Capacity:   capacity,
			Timestamp:  s.now(),
		})
	}

	return nil
}

// RunStatusReconciliation recomputes isActive and isAvailable for every
// offering from the clock and its reservation set. It only tightens
// availability; reopening is the sweeper's exclusive responsibility, so
// the two tasks converge regardless of interleaving.
func (s *LifecycleService) RunStatusReconciliation(ctx context.Context) error {
	timer := prometheus.NewTimer(metrics.ReconcileDuration)
	defer timer.ObserveDuration()

	offerings, err := s.offerings.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list offerings: %w", err)
	}

	for _, offering := range offerings {
		if err := s.reconcileOffering(ctx, offering.ID); err != nil {
			metrics.ReconcileErrorsTotal.Inc()
			logger.Get().Error("Failed to reconcile offering",
				"error", err,
				"offering_id", offering.ID)
		}
	}

	return nil
}

func (s *LifecycleService) reconcileOffering(ctx context.Context, offeringID string) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		// Re-read under the row lock; the listing above may be stale.
		offering, err := s.offerings.GetForUpdate(ctx, offeringID)
		if err != nil {
			return err
		}
		if offering == nil {
			return nil
		}

		approved, err := s.reservations.CountApproved(ctx, offeringID)
		if err != nil {
			return err
		}
		committed, err := s.reservations.CountCommitted(ctx, offeringID)
		if err != nil {
			return err
		}

		now := s.now()
		end := offering.EndBoundary()

		isActive := approved > 0 && !now.Before(offering.StartsAt) && !now.After(end)

		isAvailable := offering.IsAvailable
		if committed >= offering.MaxParticipants {
			isAvailable = false
		}
		if now.After(end) {
			isAvailable = false
		}

		if isActive == offering.IsActive && isAvailable == offering.IsAvailable {
			return nil
		}

		return s.offerings.UpdateFlags(ctx, offeringID, isActive, isAvailable)
	})
}

func (s *LifecycleService) publish(ctx context.Context, subject string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(subject, data); err != nil {
		logger.WithContext(ctx).Error("Failed to publish event",
			"error", err,
			"event_type", subject)
	}
}
