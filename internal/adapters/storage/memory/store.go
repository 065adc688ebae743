package memory

import (
	"context"
	"maps"
	"sync"

	"pet-adoption-backend/internal/domain/adoptions"
	"pet-adoption-backend/internal/domain/pets"
)

// Store guarda mascotas y solicitudes en memoria, bajo un único mutex.
// InTx serializa: equivale al caso "todas las filas lockeadas" de Postgres,
// suficiente para dev y para los tests de los services.
type Store struct {
	mu       sync.RWMutex
	petsByID map[string]pets.Pet
	appsByID map[string]adoptions.Application
}

func NewStore() *Store {
	return &Store{
		petsByID: make(map[string]pets.Pet),
		appsByID: make(map[string]adoptions.Application),
	}
}

func (s *Store) Pets() pets.Repository           { return &petRepo{s: s} }
func (s *Store) Adoptions() adoptions.Repository { return &adoptionRepo{s: s} }

// InTx toma el lock de escritura y restaura un snapshot si fn falla:
// ninguna escritura parcial sobrevive a un error.
func (s *Store) inTx(ctx context.Context, fn func(tx adoptions.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	petsSnap := maps.Clone(s.petsByID)
	appsSnap := maps.Clone(s.appsByID)

	if err := fn(&memTx{s: s}); err != nil {
		s.petsByID = petsSnap
		s.appsByID = appsSnap
		return err
	}
	return nil
}
