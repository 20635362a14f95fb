package repository

import (
	"context"

	"mentormatch/internal/database"
)

type Repositories struct {
	db           *database.DB
	Users        *UserRepository
	Offerings    *OfferingRepository
	Reservations *ReservationRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		db:           db,
		Users:        NewUserRepository(db),
		Offerings:    NewOfferingRepository(db),
		Reservations: NewReservationRepository(db),
	}
}

// WithTx satisfies the service layer's TxRunner: the callback and every
// repository call made with its context share one transaction.
func (r *Repositories) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithTx(ctx, r.db, fn)
}
