package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Statements idempotentes, se aplican en orden en cada arranque.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS pets (
		id TEXT PRIMARY KEY,
		shelter_id TEXT NOT NULL,
		name TEXT NOT NULL,
		breed TEXT NOT NULL,
		age TEXT NOT NULL DEFAULT '',
		gender TEXT NOT NULL DEFAULT 'unknown',
		location TEXT NOT NULL DEFAULT '',
		distance TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'available',
		adopted_by_user_id TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pets_shelter ON pets (shelter_id)`,
	`CREATE INDEX IF NOT EXISTS idx_pets_status ON pets (status)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		pet_id TEXT NOT NULL REFERENCES pets (id) ON DELETE CASCADE,
		status TEXT NOT NULL DEFAULT 'pending',
		applied_at TIMESTAMPTZ NOT NULL,
		decided_at TIMESTAMPTZ,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		applicant_age TEXT NOT NULL DEFAULT '',
		residence_type TEXT NOT NULL,
		own_or_rent TEXT NOT NULL,
		has_yard TEXT NOT NULL,
		owned_pets_before TEXT NOT NULL,
		has_other_pets TEXT NOT NULL,
		other_pets_details TEXT NOT NULL DEFAULT '',
		hours_alone TEXT NOT NULL,
		adoption_reason TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_pet ON applications (pet_id)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_user ON applications (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_status ON applications (pet_id, status)`,
}

// Apply ejecuta el schema completo. Cada statement es IF NOT EXISTS, así que
// correrlo en cada arranque es seguro.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
