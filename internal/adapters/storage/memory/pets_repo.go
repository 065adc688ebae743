package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pet-adoption-backend/internal/domain/pets"
)

type petRepo struct {
	s *Store
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.s.petsByID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.s.petsByID[p.ID] = p
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, exists := r.s.petsByID[p.ID]
	if !exists {
		return pets.ErrNotFound
	}
	// Los campos de ciclo de vida no se pisan por esta vía.
	p.Status = cur.Status
	p.AdoptedByUserID = cur.AdoptedByUserID
	r.s.petsByID[p.ID] = p
	return nil
}

// Delete cascadea el borrado de las solicitudes de la mascota, igual que la
// FK ON DELETE CASCADE del adapter Postgres.
func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.petsByID[id]; !exists {
		return pets.ErrNotFound
	}
	delete(r.s.petsByID, id)
	for appID, a := range r.s.appsByID {
		if a.PetID == id {
			delete(r.s.appsByID, appID)
		}
	}
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.petsByID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) ListAvailable(ctx context.Context) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.s.petsByID {
		if p.Status == pets.StatusAvailable {
			out = append(out, p)
		}
	}

	// Orden estable (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *petRepo) ListByShelter(ctx context.Context, shelterID string) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.s.petsByID {
		if p.ShelterID == shelterID {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}
