package service

import (
	"context"
	"time"

	"mentormatch/internal/models"
)

// The services depend on narrow store interfaces implemented by the
// repository layer. TxRunner carries the transaction in the context,
// so store calls made with the derived context join the same atomic
// unit of work.

type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type OfferingStore interface {
	Create(ctx context.Context, o *models.Offering) error
	GetByID(ctx context.Context, id string) (*models.Offering, error)
	GetForUpdate(ctx context.Context, id string) (*models.Offering, error)
	List(ctx context.Context) ([]models.Offering, error)
	ListAll(ctx context.Context) ([]models.Offering, error)
	SetAvailability(ctx context.Context, id string, available bool) error
	SetVerification(ctx context.Context, id string, verified bool, reason *string) error
	UpdateFlags(ctx context.Context, id string, isActive, isAvailable bool) error
}

type ReservationStore interface {
	Create(ctx context.Context, res *models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	GetLive(ctx context.Context, offeringID, userID string) (*models.Reservation, error)
	HasAny(ctx context.Context, offeringID, userID string) (bool, error)
	CountCommitted(ctx context.Context, offeringID string) (int, error)
	CountApproved(ctx context.Context, offeringID string) (int, error)
	CodeInUse(ctx context.Context, code int) (bool, error)
	SetPaymentStatus(ctx context.Context, id, status string) error
	GetByUserID(ctx context.Context, userID string) ([]models.Reservation, error)
	GetByOfferingID(ctx context.Context, offeringID string) ([]models.Reservation, error)
	ExpireLapsed(ctx context.Context, now time.Time) (map[string]int, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateRole(ctx context.Context, id, role string) error
	UpdateProfile(ctx context.Context, id string, skills, location, about *string) error
}

// Publisher is the slice of the NATS client the services use. A nil
// publisher disables events; publish failures never fail an operation.
type Publisher interface {
	Publish(subject string, data interface{}) error
}
