package repository

import (
	"context"
	"database/sql"
	"time"

	"mentormatch/internal/database"
	"mentormatch/internal/models"
)

type ReservationRepository struct {
	db *database.DB
}

func NewReservationRepository(db *database.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `id, offering_id, user_id, code, payment_status, total_amount,
	       expires_at, created_at, updated_at`

func scanReservation(row *sql.Row) (*models.Reservation, error) {
	res := &models.Reservation{}
	err := row.Scan(
		&res.ID,
		&res.OfferingID,
		&res.UserID,
		&res.Code,
		&res.PaymentStatus,
		&res.TotalAmount,
		&res.ExpiresAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return res, err
}

func (r *ReservationRepository) Create(ctx context.Context, res *models.Reservation) error {
	query := `
		INSERT INTO reservations (offering_id, user_id, code, payment_status, total_amount, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	return q(ctx, r.db).QueryRowContext(ctx, query,
		res.OfferingID,
		res.UserID,
		res.Code,
		res.PaymentStatus,
		res.TotalAmount,
		res.ExpiresAt,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	return scanReservation(q(ctx, r.db).QueryRowContext(ctx, query, id))
}

// GetLive returns the non-Expired reservation for a (user, offering)
// pair, if any. At most one can exist for class offerings.
func (r *ReservationRepository) GetLive(ctx context.Context, offeringID, userID string) (*models.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE offering_id = $1 AND user_id = $2 AND payment_status <> 'Expired'
		ORDER BY created_at DESC
		LIMIT 1`

	return scanReservation(q(ctx, r.db).QueryRowContext(ctx, query, offeringID, userID))
}

// HasAny reports whether the pair was ever booked, expired or not.
// Session offerings forbid rebooking outright.
func (r *ReservationRepository) HasAny(ctx context.Context, offeringID, userID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM reservations WHERE offering_id = $1 AND user_id = $2)`
	err := q(ctx, r.db).QueryRowContext(ctx, query, offeringID, userID).Scan(&exists)
	return exists, err
}

// CountCommitted is the capacity ledger: Approved and Pending both hold
// a seat so the payment window cannot oversell.
func (r *ReservationRepository) CountCommitted(ctx context.Context, offeringID string) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM reservations
		WHERE offering_id = $1 AND payment_status IN ('Approved', 'Pending')`

	err := q(ctx, r.db).QueryRowContext(ctx, query, offeringID).Scan(&count)
	return count, err
}

func (r *ReservationRepository) CountApproved(ctx context.Context, offeringID string) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM reservations
		WHERE offering_id = $1 AND payment_status = 'Approved'`

	err := q(ctx, r.db).QueryRowContext(ctx, query, offeringID).Scan(&count)
	return count, err
}

// CodeInUse reports whether a live reservation already holds the code.
func (r *ReservationRepository) CodeInUse(ctx context.Context, code int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM reservations WHERE code = $1 AND payment_status <> 'Expired')`
	err := q(ctx, r.db).QueryRowContext(ctx, query, code).Scan(&exists)
	return exists, err
}

func (r *ReservationRepository) SetPaymentStatus(ctx context.Context, id, status string) error {
	query := `UPDATE reservations SET payment_status = $1, updated_at = NOW() WHERE id = $2`
	result, err := q(ctx, r.db).ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *ReservationRepository) GetByUserID(ctx context.Context, userID string) ([]models.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := q(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReservations(rows)
}

func (r *ReservationRepository) GetByOfferingID(ctx context.Context, offeringID string) ([]models.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE offering_id = $1
		ORDER BY created_at DESC`

	rows, err := q(ctx, r.db).QueryContext(ctx, query, offeringID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReservations(rows)
}

func collectReservations(rows *sql.Rows) ([]models.Reservation, error) {
	var reservations []models.Reservation
	for rows.Next() {
		var res models.Reservation
		err := rows.Scan(
			&res.ID,
			&res.OfferingID,
			&res.UserID,
			&res.Code,
			&res.PaymentStatus,
			&res.TotalAmount,
			&res.ExpiresAt,
			&res.CreatedAt,
			&res.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}

// ExpireLapsed transitions every lapsed, unpaid reservation to Expired
// in one statement and returns the ids of the offerings touched, each
// with the number of rows expired. Approved rows are never expired.
func (r *ReservationRepository) ExpireLapsed(ctx context.Context, now time.Time) (map[string]int, error) {
	query := `
		UPDATE reservations
		SET payment_status = 'Expired', updated_at = NOW()
		WHERE expires_at < $1 AND payment_status NOT IN ('Approved', 'Expired')
		RETURNING offering_id`

	rows, err := q(ctx, r.db).QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	touched := make(map[string]int)
	for rows.Next() {
		var offeringID string
		if err := rows.Scan(&offeringID); err != nil {
			return nil, err
		}
		touched[offeringID]++
	}

	return touched, rows.Err()
}
