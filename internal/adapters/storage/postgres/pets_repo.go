package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-backend/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, shelter_id,
	name, breed, age, gender,
	location, distance, image,
	status, adopted_by_user_id,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, shelter_id,
			name, breed, age, gender,
			location, distance, image,
			status, adopted_by_user_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		p.ID,
		p.ShelterID,
		p.Name,
		p.Breed,
		p.Age,
		p.Gender,
		p.Location,
		p.Distance,
		p.Image,
		p.Status,
		toNullString(p.AdoptedByUserID),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

// Update toca solo el perfil; status y adopted_by_user_id se mutan
// únicamente desde las transacciones del módulo adoptions.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			breed = $3,
			age = $4,
			gender = $5,
			location = $6,
			distance = $7,
			image = $8,
			updated_at = $9
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Breed,
		p.Age,
		p.Gender,
		p.Location,
		p.Distance,
		p.Image,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

// Delete cascadea las applications vía FK ON DELETE CASCADE.
func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	return scanPet(row)
}

func (r *PetsRepo) ListAvailable(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE status = 'available'
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPets(rows)
}

func (r *PetsRepo) ListByShelter(ctx context.Context, shelterID string) ([]pets.Pet, error) {
	shelterID = strings.TrimSpace(shelterID)
	if shelterID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE shelter_id = $1
		ORDER BY created_at DESC
	`, shelterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPets(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var adoptedBy sql.NullString
	if err := row.Scan(
		&p.ID,
		&p.ShelterID,
		&p.Name,
		&p.Breed,
		&p.Age,
		&p.Gender,
		&p.Location,
		&p.Distance,
		&p.Image,
		&p.Status,
		&adoptedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}

	if adoptedBy.Valid {
		v := adoptedBy.String
		p.AdoptedByUserID = &v
	}
	return p, nil
}

func collectPets(rows *sql.Rows) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
