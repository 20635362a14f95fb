package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createUsersTable,
		createOfferingsTable,
		createReservationsTable,
		createLiveCodeIndex,
		createReservationLookupIndex,
		createExpiryIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createUsersTable = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(64) NOT NULL DEFAULT '',
    name VARCHAR(255) NOT NULL,
    photo_url TEXT,
    user_type VARCHAR(20) NOT NULL DEFAULT 'Mentee',
    skills TEXT,
    location VARCHAR(255),
    about TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (user_type IN ('Admin', 'PendingMentor', 'Mentor', 'Mentee'))
);`

const createOfferingsTable = `
CREATE TABLE IF NOT EXISTS offerings (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    mentor_id UUID NOT NULL REFERENCES users(id),
    kind VARCHAR(10) NOT NULL,
    name VARCHAR(500) NOT NULL,
    description TEXT,
    price BIGINT NOT NULL DEFAULT 0,
    max_participants INTEGER NOT NULL,
    is_available BOOLEAN NOT NULL DEFAULT FALSE,
    is_active BOOLEAN NOT NULL DEFAULT FALSE,
    is_verified BOOLEAN NOT NULL DEFAULT FALSE,
    reject_reason TEXT,
    starts_at TIMESTAMP NOT NULL,
    ends_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (kind IN ('class', 'session')),
    CHECK (max_participants > 0)
);`

const createReservationsTable = `
CREATE TABLE IF NOT EXISTS reservations (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    offering_id UUID NOT NULL REFERENCES offerings(id),
    user_id UUID NOT NULL REFERENCES users(id),
    code INTEGER NOT NULL,
    payment_status VARCHAR(20) NOT NULL DEFAULT 'Pending',
    total_amount BIGINT NOT NULL DEFAULT 0,
    expires_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (code BETWEEN 100 AND 999),
    CHECK (payment_status IN ('Pending', 'Approved', 'Rejected', 'Expired'))
);`

// Live codes must be unique; expired codes may be recycled. Enforced at
// the store so multiple instances cannot double-issue a code.
const createLiveCodeIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS reservations_live_code_idx
ON reservations (code) WHERE payment_status <> 'Expired';`

const createReservationLookupIndex = `
CREATE INDEX IF NOT EXISTS reservations_offering_user_idx
ON reservations (offering_id, user_id);`

const createExpiryIndex = `
CREATE INDEX IF NOT EXISTS reservations_expiry_idx
ON reservations (expires_at) WHERE payment_status NOT IN ('Approved', 'Expired');`
