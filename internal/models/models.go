package models

import "time"

// CreateOfferingRequest - payload for publishing a class or session
type CreateOfferingRequest struct {
	MentorID        string     `json:"mentor_id" binding:"required"`
	Kind            string     `json:"kind" binding:"required,oneof=class session"`
	Name            string     `json:"name" binding:"required"`
	Description     *string    `json:"description"`
	Price           int64      `json:"price"`
	MaxParticipants int        `json:"max_participants" binding:"required,min=1"`
	StartsAt        time.Time  `json:"starts_at" binding:"required"`
	EndsAt          *time.Time `json:"ends_at"`
}

// CreateOfferingResponse - response for a newly published offering
type CreateOfferingResponse struct {
	ID string `json:"id"`
}

// ListOfferingsResponseItem - element of the offerings list
type ListOfferingsResponseItem struct {
	ID              string    `json:"id"`
	Kind            string    `json:"kind"`
	Name            string    `json:"name"`
	Price           int64     `json:"price"`
	MaxParticipants int       `json:"max_participants"`
	IsAvailable     bool      `json:"is_available"`
	IsActive        bool      `json:"is_active"`
	IsVerified      bool      `json:"is_verified"`
	StartsAt        time.Time `json:"starts_at"`
}

// ListOfferingsResponse - offerings list
type ListOfferingsResponse []ListOfferingsResponseItem

// BookOfferingRequest - payload for booking a seat
type BookOfferingRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// BookOfferingResponse - the committed reservation
type BookOfferingResponse struct {
	ReservationID string    `json:"reservation_id"`
	Code          int       `json:"code"`
	TotalAmount   int64     `json:"total_amount"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// CapacityResponse - committed seats versus capacity for an offering
type CapacityResponse struct {
	OfferingID string `json:"offering_id"`
	Committed  int    `json:"committed"`
	Capacity   int    `json:"capacity"`
}

// ListReservationsResponseItem - element of a user's reservations list
type ListReservationsResponseItem struct {
	ID            string    `json:"id"`
	OfferingID    string    `json:"offering_id"`
	Code          int       `json:"code"`
	PaymentStatus string    `json:"payment_status"`
	TotalAmount   int64     `json:"total_amount"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// ListReservationsResponse - reservations list
type ListReservationsResponse []ListReservationsResponseItem

// OfferingDetailResponse - one offering with its reservations
type OfferingDetailResponse struct {
	Offering     *Offering                      `json:"offering"`
	Reservations []ListReservationsResponseItem `json:"reservations"`
}

// SelectRoleRequest - payload for choosing a role after login
type SelectRoleRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=Admin PendingMentor Mentor Mentee"`
}

// RegisterMentorRequest - payload for upgrading a user to PendingMentor
type RegisterMentorRequest struct {
	Skills   *string `json:"skills"`
	Location *string `json:"location"`
	About    *string `json:"about"`
}

// VerifyOfferingRequest - admin approval of an offering
type VerifyOfferingRequest struct {
	OfferingID string `json:"offering_id" binding:"required"`
}

// RejectOfferingRequest - admin rejection of an offering
type RejectOfferingRequest struct {
	OfferingID string `json:"offering_id" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

// ReviewReservationRequest - admin decision on a pending payment
type ReviewReservationRequest struct {
	ReservationID string `json:"reservation_id" binding:"required"`
	Approve       bool   `json:"approve"`
}
