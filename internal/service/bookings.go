package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mentormatch/internal/bookingcode"
	apperrors "mentormatch/internal/errors"
	"mentormatch/internal/logger"
	"mentormatch/internal/metrics"
	"mentormatch/internal/models"
)

// maxCodeAttempts bounds the uniqueness retry loop. Only 900 codes
// exist; three thousand draws without a free one means the live set is
// effectively saturated and the caller gets ErrCodeRetryExhausted.
const maxCodeAttempts = 3000

type BookingService struct {
	tx           TxRunner
	offerings    OfferingStore
	reservations ReservationStore
	users        UserStore
	publisher    Publisher
	ttl          time.Duration
	now          func() time.Time
}

func NewBookingService(tx TxRunner, offerings OfferingStore, reservations ReservationStore, users UserStore, publisher Publisher, ttl time.Duration) *BookingService {
	return &BookingService{
		tx:           tx,
		offerings:    offerings,
		reservations: reservations,
		users:        users,
		publisher:    publisher,
		ttl:          ttl,
		now:          time.Now,
	}
}

// Book reserves one seat for userID on offeringID. Every precondition
// check and both writes happen inside a single transaction holding the
// offering's row lock, so concurrent bookings for the same offering
// observe a serial order for the capacity decision.
func (s *BookingService) Book(ctx context.Context, offeringID, userID string) (*models.BookOfferingResponse, error) {
	var resp *models.BookOfferingResponse
	var closed bool

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		offering, err := s.offerings.GetForUpdate(ctx, offeringID)
		if err != nil {
			return fmt.Errorf("failed to get offering: %w", err)
		}
		if offering == nil {
			return apperrors.ErrOfferingNotFound
		}
		if !offering.IsAvailable {
			return apperrors.ErrNotAvailable
		}

		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			return apperrors.ErrUserNotFound
		}

		live, err := s.reservations.GetLive(ctx, offeringID, userID)
		if err != nil {
			return fmt.Errorf("failed to check existing reservation: %w", err)
		}
		if live != nil {
			if live.PaymentStatus == models.PaymentPending {
				return apperrors.ErrAlreadyPending
			}
			return apperrors.ErrAlreadyApproved
		}

		// Sessions forbid rebooking even after the old reservation
		// expired; classes only block while one is live.
		if offering.Kind == models.OfferingSession {
			booked, err := s.reservations.HasAny(ctx, offeringID, userID)
			if err != nil {
				return fmt.Errorf("failed to check booking history: %w", err)
			}
			if booked {
				return apperrors.ErrDuplicateBooking
			}
		}

		committed, err := s.reservations.CountCommitted(ctx, offeringID)
		if err != nil {
			return fmt.Errorf("failed to count committed seats: %w", err)
		}
		if committed >= offering.MaxParticipants {
			return apperrors.ErrFull
		}

		code, err := s.allocateCode(ctx)
		if err != nil {
			return err
		}

		reservation := &models.Reservation{
			OfferingID:    offeringID,
			UserID:        userID,
			Code:          code,
			PaymentStatus: models.PaymentPending,
			TotalAmount:   offering.Price + int64(code),
			ExpiresAt:     s.now().Add(s.ttl),
		}

		if err := s.reservations.Create(ctx, reservation); err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}

		// The new reservation may take the last seat.
		if committed+1 == offering.MaxParticipants {
			if err := s.offerings.SetAvailability(ctx, offeringID, false); err != nil {
				return fmt.Errorf("failed to close offering: %w", err)
			}
			closed = true
		}

		resp = &models.BookOfferingResponse{
			ReservationID: reservation.ID,
			Code:          reservation.Code,
			TotalAmount:   reservation.TotalAmount,
			ExpiresAt:     reservation.ExpiresAt,
		}
		return nil
	})

	if err != nil {
		metrics.BookingsTotal.WithLabelValues(bookingOutcome(err)).Inc()
		return nil, err
	}

	metrics.BookingsTotal.WithLabelValues("booked").Inc()

	s.publish(ctx, models.EventReservationCreated, models.ReservationCreatedEvent{
		ReservationID: resp.ReservationID,
		OfferingID:    offeringID,
		UserID:        userID,
		Code:          resp.Code,
		ExpiresAt:     resp.ExpiresAt,
		Timestamp:     s.now(),
	})

	if closed {
		s.publish(ctx, models.EventOfferingClosed, models.OfferingClosedEvent{
			OfferingID: offeringID,
			Timestamp:  s.now(),
		})
	}

	return resp, nil
}

// allocateCode draws codes until one is free among live reservations.
func (s *BookingService) allocateCode(ctx context.Context) (int, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := bookingcode.Generate()

		inUse, err := s.reservations.CodeInUse(ctx, code)
		if err != nil {
			return 0, fmt.Errorf("failed to check code uniqueness: %w", err)
		}
		if !inUse {
			return code, nil
		}
	}

	logger.WithContext(ctx).Warn("Booking code space saturated",
		"attempts", maxCodeAttempts)
	return 0, apperrors.ErrCodeRetryExhausted
}

// GetCapacity reports committed seats versus capacity for an offering.
func (s *BookingService) GetCapacity(ctx context.Context, offeringID string) (*models.CapacityResponse, error) {
	offering, err := s.offerings.GetByID(ctx, offeringID)
	if err != nil {
		return nil, fmt.Errorf("failed to get offering: %w", err)
	}
	if offering == nil {
		return nil, apperrors.ErrOfferingNotFound
	}

	committed, err := s.reservations.CountCommitted(ctx, offeringID)
	if err != nil {
		return nil, fmt.Errorf("failed to count committed seats: %w", err)
	}

	return &models.CapacityResponse{
		OfferingID: offeringID,
		Committed:  committed,
		Capacity:   offering.MaxParticipants,
	}, nil
}

// Review applies an admin decision to a pending reservation. Approved
// and Expired reservations are immutable.
func (s *BookingService) Review(ctx context.Context, reservationID string, approve bool) error {
	var offeringID, status string

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		reservation, err := s.reservations.GetByID(ctx, reservationID)
		if err != nil {
			return fmt.Errorf("failed to get reservation: %w", err)
		}
		if reservation == nil {
			return apperrors.ErrReservationNotFound
		}
		if reservation.PaymentStatus != models.PaymentPending {
			return apperrors.ErrNotPending
		}

		status = models.PaymentRejected
		if approve {
			status = models.PaymentApproved
		}
		offeringID = reservation.OfferingID

		return s.reservations.SetPaymentStatus(ctx, reservationID, status)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, models.EventReservationReviewed, models.ReservationReviewedEvent{
		ReservationID: reservationID,
		OfferingID:    offeringID,
		PaymentStatus: status,
		Timestamp:     s.now(),
	})

	return nil
}

// ListByUser returns a user's reservations, newest first.
func (s *BookingService) ListByUser(ctx context.Context, userID string) (models.ListReservationsResponse, error) {
	reservations, err := s.reservations.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	result := make(models.ListReservationsResponse, len(reservations))
	for i, res := range reservations {
		result[i] = models.ListReservationsResponseItem{
			ID:            res.ID,
			OfferingID:    res.OfferingID,
			Code:          res.Code,
			PaymentStatus: res.PaymentStatus,
			TotalAmount:   res.TotalAmount,
			ExpiresAt:     res.ExpiresAt,
		}
	}

	return result, nil
}

func (s *BookingService) publish(ctx context.Context, subject string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(subject, data); err != nil {
		logger.WithContext(ctx).Error("Failed to publish event",
			"error", err,
			"event_type", subject)
	}
}

func bookingOutcome(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrOfferingNotFound), errors.Is(err, apperrors.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrNotAvailable):
		return "not_available"
	case errors.Is(err, apperrors.ErrDuplicateBooking):
		return "duplicate"
	case errors.Is(err, apperrors.ErrFull):
		return "full"
	case errors.Is(err, apperrors.ErrCodeRetryExhausted):
		return "code_conflict"
	default:
		return "error"
	}
}
