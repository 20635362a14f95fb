package models

import (
	"time"
)

// User roles as selected after first login.
const (
	RoleAdmin         = "Admin"
	RolePendingMentor = "PendingMentor"
	RoleMentor        = "Mentor"
	RoleMentee        = "Mentee"
)

// Offering kinds. Classes run over a date range, sessions have a
// single start time.
const (
	OfferingClass   = "class"
	OfferingSession = "session"
)

// Reservation payment lifecycle.
const (
	PaymentPending  = "Pending"
	PaymentApproved = "Approved"
	PaymentRejected = "Rejected"
	PaymentExpired  = "Expired"
)

// User represents a user in the system
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	PhotoURL     *string   `json:"photo_url" db:"photo_url"`
	UserType     string    `json:"user_type" db:"user_type"`
	Skills       *string   `json:"skills" db:"skills"`
	Location     *string   `json:"location" db:"location"`
	About        *string   `json:"about" db:"about"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Offering represents a bookable class or session owned by a mentor
type Offering struct {
	ID              string     `json:"id" db:"id"`
	MentorID        string     `json:"mentor_id" db:"mentor_id"`
	Kind            string     `json:"kind" db:"kind"`
	Name            string     `json:"name" db:"name"`
	Description     *string    `json:"description" db:"description"`
	Price           int64      `json:"price" db:"price"`
	MaxParticipants int        `json:"max_participants" db:"max_participants"`
	IsAvailable     bool       `json:"is_available" db:"is_available"`
	IsActive        bool       `json:"is_active" db:"is_active"`
	IsVerified      bool       `json:"is_verified" db:"is_verified"`
	RejectReason    *string    `json:"reject_reason" db:"reject_reason"`
	StartsAt        time.Time  `json:"starts_at" db:"starts_at"`
	EndsAt          *time.Time `json:"ends_at" db:"ends_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// EndBoundary is the instant after which the offering stops accepting
// bookings: ends_at for classes, starts_at for sessions.
func (o *Offering) EndBoundary() time.Time {
	if o.EndsAt != nil {
		return *o.EndsAt
	}
	return o.StartsAt
}

// Reservation links one user to one offering with a payment lifecycle
type Reservation struct {
	ID            string    `json:"id" db:"id"`
	OfferingID    string    `json:"offering_id" db:"offering_id"`
	UserID        string    `json:"user_id" db:"user_id"`
	Code          int       `json:"code" db:"code"`
	PaymentStatus string    `json:"payment_status" db:"payment_status"`
	TotalAmount   int64     `json:"total_amount" db:"total_amount"`
	ExpiresAt     time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Live reports whether the reservation still blocks its code and its
// (user, offering) pair. Expired codes may be recycled.
func (r *Reservation) Live() bool {
	return r.PaymentStatus != PaymentExpired
}
