package adoptions

import (
	"context"
	"time"

	"pet-adoption-backend/internal/domain/pets"
)

// Tx es la vista transaccional del storage. Todas las lecturas que informan
// una decisión y todas las escrituras que la implementan pasan por aquí,
// dentro de un único InTx. Los GetXxxForUpdate toman lock exclusivo de fila
// (SELECT ... FOR UPDATE en Postgres; mutex global en memory).
type Tx interface {
	GetForUpdate(ctx context.Context, id string) (Application, error)
	GetPetForUpdate(ctx context.Context, petID string) (pets.Pet, error)

	// HasOtherPending reporta si existe otra solicitud pending para la
	// mascota, excluyendo excludeID (puede ir vacío).
	HasOtherPending(ctx context.Context, petID, excludeID string) (bool, error)
	// HasActiveByUserAndPet reporta si el par (user, pet) ya tiene una
	// solicitud en pending o approved.
	HasActiveByUserAndPet(ctx context.Context, userID, petID string) (bool, error)

	Create(ctx context.Context, a Application) error
	UpdateStatus(ctx context.Context, id string, st Status, decidedAt time.Time) error
	// RejectOtherPending fuerza a rejected, en un solo batch, toda otra
	// solicitud pending de la mascota (cascade rejection del approve).
	RejectOtherPending(ctx context.Context, petID, excludeID string, decidedAt time.Time) (int64, error)
	Delete(ctx context.Context, id string) error

	SetPetStatus(ctx context.Context, petID string, st pets.Status, adoptedBy *string, updatedAt time.Time) error
}

type Repository interface {
	// InTx ejecuta fn dentro de una transacción atómica. Si fn devuelve
	// error, ninguna escritura llega al storage.
	InTx(ctx context.Context, fn func(tx Tx) error) error

	GetByID(ctx context.Context, id string) (Application, error)
	ListByUser(ctx context.Context, userID string) ([]Application, error)
	// ListByShelter devuelve las solicitudes sobre mascotas del refugio.
	ListByShelter(ctx context.Context, shelterID string) ([]Application, error)
}
