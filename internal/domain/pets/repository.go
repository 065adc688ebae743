package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	// Delete borra la mascota; el storage cascadea el borrado de sus
	// applications (FK en Postgres, explícito en memory).
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListAvailable(ctx context.Context) ([]Pet, error)
	ListByShelter(ctx context.Context, shelterID string) ([]Pet, error)
}
