package models

import "time"

// NATS subjects for booking lifecycle events
const (
	EventReservationCreated  = "reservation.created"
	EventReservationReviewed = "reservation.reviewed"
	EventReservationExpired  = "reservation.expired"
	EventOfferingClosed      = "offering.closed"
	EventOfferingReopened    = "offering.reopened"
)

// ReservationCreatedEvent is published after a booking commits
type ReservationCreatedEvent struct {
	ReservationID string    `json:"reservation_id"`
	OfferingID    string    `json:"offering_id"`
	UserID        string    `json:"user_id"`
	Code          int       `json:"code"`
	ExpiresAt     time.Time `json:"expires_at"`
	Timestamp     time.Time `json:"timestamp"`
}

// ReservationReviewedEvent is published after an admin decision
type ReservationReviewedEvent struct {
	ReservationID string    `json:"reservation_id"`
	OfferingID    string    `json:"offering_id"`
	PaymentStatus string    `json:"payment_status"`
	Timestamp     time.Time `json:"timestamp"`
}

// ReservationExpiredEvent is published for each reservation the sweeper expires
type ReservationExpiredEvent struct {
	OfferingID string    `json:"offering_id"`
	Count      int       `json:"count"`
	Timestamp  time.Time `json:"timestamp"`
}

// OfferingClosedEvent is published when a booking fills the last seat
type OfferingClosedEvent struct {
	OfferingID string    `json:"offering_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// OfferingReopenedEvent is published when the sweeper restores inventory
type OfferingReopenedEvent struct {
	OfferingID string    `json:"offering_id"`
	Committed  int       `json:"committed"`
	Capacity   int       `json:"capacity"`
	Timestamp  time.Time `json:"timestamp"`
}
