package service

import (
	"time"

	"mentormatch/internal/messaging"
	"mentormatch/internal/repository"
)

type Services struct {
	Offerings *OfferingService
	Bookings  *BookingService
	Users     *UserService
	Lifecycle *LifecycleService
}

func NewServices(repos *repository.Repositories, natsClient *messaging.NATSClient, bookingTTL time.Duration) *Services {
	// Keep the interface nil when no client is wired, so publish
	// checks stay meaningful.
	var publisher Publisher
	if natsClient != nil {
		publisher = natsClient
	}

	return &Services{
		Offerings: NewOfferingService(repos.Offerings, repos.Reservations, repos.Users),
		Bookings:  NewBookingService(repos, repos.Offerings, repos.Reservations, repos.Users, publisher, bookingTTL),
		Users:     NewUserService(repos.Users),
		Lifecycle: NewLifecycleService(repos, repos.Offerings, repos.Reservations, publisher),
	}
}
