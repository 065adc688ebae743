package postgres

import (
	"context"
	"database/sql"
	"time"

	"pet-adoption-backend/internal/domain/adoptions"
	"pet-adoption-backend/internal/domain/pets"
)

type AdoptionsRepo struct {
	db *sql.DB
}

func NewAdoptionsRepo(db *sql.DB) *AdoptionsRepo {
	return &AdoptionsRepo{db: db}
}

const applicationColumns = `
	id, user_id, pet_id,
	status, applied_at, decided_at,
	full_name, email, phone_number, applicant_age,
	residence_type, own_or_rent, has_yard,
	owned_pets_before, has_other_pets, other_pets_details,
	hours_alone, adoption_reason`

// InTx abre una transacción y la commitea solo si fn no falla. Los locks de
// fila (FOR UPDATE) que fn tome viven hasta el COMMIT/ROLLBACK.
func (r *AdoptionsRepo) InTx(ctx context.Context, fn func(tx adoptions.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(&adoptionsTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *AdoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *AdoptionsRepo) ListByUser(ctx context.Context, userID string) ([]adoptions.Application, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE user_id = $1
		ORDER BY applied_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *AdoptionsRepo) ListByShelter(ctx context.Context, shelterID string) ([]adoptions.Application, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			a.id, a.user_id, a.pet_id,
			a.status, a.applied_at, a.decided_at,
			a.full_name, a.email, a.phone_number, a.applicant_age,
			a.residence_type, a.own_or_rent, a.has_yard,
			a.owned_pets_before, a.has_other_pets, a.other_pets_details,
			a.hours_alone, a.adoption_reason
		FROM applications a
		JOIN pets p ON p.id = a.pet_id
		WHERE p.shelter_id = $1
		ORDER BY a.applied_at DESC
	`, shelterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

type adoptionsTx struct {
	tx *sql.Tx
}

func (t *adoptionsTx) GetForUpdate(ctx context.Context, id string) (adoptions.Application, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1 FOR UPDATE`, id)
	return scanApplication(row)
}

func (t *adoptionsTx) GetPetForUpdate(ctx context.Context, petID string) (pets.Pet, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1 FOR UPDATE`, petID)
	return scanPet(row)
}

func (t *adoptionsTx) HasOtherPending(ctx context.Context, petID, excludeID string) (bool, error) {
	var exists bool
	err := t.tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM applications
			WHERE pet_id = $1 AND id <> $2 AND status = 'pending'
		)
	`, petID, excludeID).Scan(&exists)
	return exists, err
}

func (t *adoptionsTx) HasActiveByUserAndPet(ctx context.Context, userID, petID string) (bool, error) {
	var exists bool
	err := t.tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM applications
			WHERE user_id = $1 AND pet_id = $2 AND status IN ('pending','approved')
		)
	`, userID, petID).Scan(&exists)
	return exists, err
}

func (t *adoptionsTx) Create(ctx context.Context, a adoptions.Application) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO applications (
			id, user_id, pet_id,
			status, applied_at, decided_at,
			full_name, email, phone_number, applicant_age,
			residence_type, own_or_rent, has_yard,
			owned_pets_before, has_other_pets, other_pets_details,
			hours_alone, adoption_reason
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`,
		a.ID,
		a.UserID,
		a.PetID,
		a.Status,
		a.AppliedAt,
		toNullTime(a.DecidedAt),
		a.Form.FullName,
		a.Form.Email,
		a.Form.PhoneNumber,
		a.Form.ApplicantAge,
		a.Form.ResidenceType,
		a.Form.OwnOrRent,
		a.Form.HasYard,
		a.Form.OwnedPetsBefore,
		a.Form.HasOtherPets,
		a.Form.OtherPetsDetails,
		a.Form.HoursAlone,
		a.Form.AdoptionReason,
	)
	return err
}

func (t *adoptionsTx) UpdateStatus(ctx context.Context, id string, st adoptions.Status, decidedAt time.Time) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE applications SET status = $2, decided_at = $3 WHERE id = $1
	`, id, st, decidedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return adoptions.ErrNotFound
	}
	return nil
}

func (t *adoptionsTx) RejectOtherPending(ctx context.Context, petID, excludeID string, decidedAt time.Time) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE applications
		SET status = 'rejected', decided_at = $3
		WHERE pet_id = $1 AND id <> $2 AND status = 'pending'
	`, petID, excludeID, decidedAt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (t *adoptionsTx) Delete(ctx context.Context, id string) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return adoptions.ErrNotFound
	}
	return nil
}

func (t *adoptionsTx) SetPetStatus(ctx context.Context, petID string, st pets.Status, adoptedBy *string, updatedAt time.Time) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE pets SET status = $2, adopted_by_user_id = $3, updated_at = $4 WHERE id = $1
	`, petID, st, toNullString(adoptedBy), updatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func scanApplication(row rowScanner) (adoptions.Application, error) {
	var a adoptions.Application
	var decidedAt sql.NullTime
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.PetID,
		&a.Status,
		&a.AppliedAt,
		&decidedAt,
		&a.Form.FullName,
		&a.Form.Email,
		&a.Form.PhoneNumber,
		&a.Form.ApplicantAge,
		&a.Form.ResidenceType,
		&a.Form.OwnOrRent,
		&a.Form.HasYard,
		&a.Form.OwnedPetsBefore,
		&a.Form.HasOtherPets,
		&a.Form.OtherPetsDetails,
		&a.Form.HoursAlone,
		&a.Form.AdoptionReason,
	); err != nil {
		if err == sql.ErrNoRows {
			return adoptions.Application{}, adoptions.ErrNotFound
		}
		return adoptions.Application{}, err
	}

	if decidedAt.Valid {
		ts := decidedAt.Time
		a.DecidedAt = &ts
	}
	return a, nil
}

func collectApplications(rows *sql.Rows) ([]adoptions.Application, error) {
	out := make([]adoptions.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
