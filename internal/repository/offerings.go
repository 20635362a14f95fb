package repository

import (
	"context"
	"database/sql"

	"mentormatch/internal/database"
	"mentormatch/internal/models"
)

type OfferingRepository struct {
	db *database.DB
}

func NewOfferingRepository(db *database.DB) *OfferingRepository {
	return &OfferingRepository{db: db}
}

const offeringColumns = `id, mentor_id, kind, name, description, price, max_participants,
	       is_available, is_active, is_verified, reject_reason, starts_at, ends_at,
	       created_at, updated_at`

func scanOffering(row *sql.Row) (*models.Offering, error) {
	o := &models.Offering{}
	err := row.Scan(
		&o.ID,
		&o.MentorID,
		&o.Kind,
		&o.Name,
		&o.Description,
		&o.Price,
		&o.MaxParticipants,
		&o.IsAvailable,
		&o.IsActive,
		&o.IsVerified,
		&o.RejectReason,
		&o.StartsAt,
		&o.EndsAt,
		&o.CreatedAt,
		&o.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return o, err
}

func (r *OfferingRepository) Create(ctx context.Context, o *models.Offering) error {
	query := `
		INSERT INTO offerings (mentor_id, kind, name, description, price, max_participants,
		                       is_available, is_active, is_verified, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	return q(ctx, r.db).QueryRowContext(ctx, query,
		o.MentorID,
		o.Kind,
		o.Name,
		o.Description,
		o.Price,
		o.MaxParticipants,
		o.IsAvailable,
		o.IsActive,
		o.IsVerified,
		o.StartsAt,
		o.EndsAt,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

func (r *OfferingRepository) GetByID(ctx context.Context, id string) (*models.Offering, error) {
	query := `SELECT ` + offeringColumns + ` FROM offerings WHERE id = $1`
	return scanOffering(q(ctx, r.db).QueryRowContext(ctx, query, id))
}

// GetForUpdate locks the offering row for the rest of the ambient
// transaction. All capacity decisions for one offering serialize on
// this lock, so two bookings cannot both observe the last free seat.
func (r *OfferingRepository) GetForUpdate(ctx context.Context, id string) (*models.Offering, error) {
	query := `SELECT ` + offeringColumns + ` FROM offerings WHERE id = $1 FOR UPDATE`
	return scanOffering(q(ctx, r.db).QueryRowContext(ctx, query, id))
}

// List returns the public catalog: verified offerings only.
func (r *OfferingRepository) List(ctx context.Context) ([]models.Offering, error) {
	query := `SELECT ` + offeringColumns + ` FROM offerings WHERE is_verified = TRUE ORDER BY created_at DESC`

	rows, err := q(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOfferings(rows)
}

// ListAll returns every offering for reconciliation. No filter: each
// tick recomputes flags from ground truth rather than applying deltas.
func (r *OfferingRepository) ListAll(ctx context.Context) ([]models.Offering, error) {
	query := `SELECT ` + offeringColumns + ` FROM offerings ORDER BY created_at`

	rows, err := q(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOfferings(rows)
}

func collectOfferings(rows *sql.Rows) ([]models.Offering, error) {
	var offerings []models.Offering
	for rows.Next() {
		var o models.Offering
		err := rows.Scan(
			&o.ID,
			&o.MentorID,
			&o.Kind,
			&o.Name,
			&o.Description,
			&o.Price,
			&o.MaxParticipants,
			&o.IsAvailable,
			&o.IsActive,
			&o.IsVerified,
			&o.RejectReason,
			&o.StartsAt,
			&o.EndsAt,
			&o.CreatedAt,
			&o.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		offerings = append(offerings, o)
	}

	return offerings, rows.Err()
}

func (r *OfferingRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	query := `UPDATE offerings SET is_available = $1, updated_at = NOW() WHERE id = $2`
	_, err := q(ctx, r.db).ExecContext(ctx, query, available, id)
	return err
}

func (r *OfferingRepository) SetVerification(ctx context.Context, id string, verified bool, reason *string) error {
	query := `
		UPDATE offerings
		SET is_verified = $1, is_available = $1, reject_reason = $2, updated_at = NOW()
		WHERE id = $3`

	result, err := q(ctx, r.db).ExecContext(ctx, query, verified, reason, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *OfferingRepository) UpdateFlags(ctx context.Context, id string, isActive, isAvailable bool) error {
	query := `
		UPDATE offerings
		SET is_active = $1, is_available = $2, updated_at = NOW()
		WHERE id = $3`

	_, err := q(ctx, r.db).ExecContext(ctx, query, isActive, isAvailable, id)
	return err
}
