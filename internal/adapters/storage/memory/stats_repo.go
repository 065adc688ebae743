package memory

import (
	"context"

	"pet-adoption-backend/internal/domain/adoptions"
	"pet-adoption-backend/internal/domain/pets"
	"pet-adoption-backend/internal/domain/stats"
)

type statsRepo struct {
	s *Store
}

func (s *Store) Stats() stats.Source { return &statsRepo{s: s} }

func (r *statsRepo) Totals(ctx context.Context) (stats.Totals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var t stats.Totals
	for _, p := range r.s.petsByID {
		t.PetsTotal++
		switch p.Status {
		case pets.StatusAvailable:
			t.PetsAvailable++
		case pets.StatusPending:
			t.PetsPending++
		case pets.StatusAdopted:
			t.PetsAdopted++
		}
	}
	for _, a := range r.s.appsByID {
		t.ApplicationsTotal++
		switch a.Status {
		case adoptions.StatusPending:
			t.ApplicationsPending++
		case adoptions.StatusApproved:
			t.ApplicationsApproved++
		case adoptions.StatusRejected:
			t.ApplicationsRejected++
		}
	}
	return t, nil
}
