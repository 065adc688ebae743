package memory

import (
	"context"
	"sort"
	"time"

	"pet-adoption-backend/internal/domain/adoptions"
	"pet-adoption-backend/internal/domain/pets"
)

type adoptionRepo struct {
	s *Store
}

func (r *adoptionRepo) InTx(ctx context.Context, fn func(tx adoptions.Tx) error) error {
	return r.s.inTx(ctx, fn)
}

func (r *adoptionRepo) GetByID(ctx context.Context, id string) (adoptions.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.appsByID[id]
	if !ok {
		return adoptions.Application{}, adoptions.ErrNotFound
	}
	return a, nil
}

func (r *adoptionRepo) ListByUser(ctx context.Context, userID string) ([]adoptions.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]adoptions.Application, 0)
	for _, a := range r.s.appsByID {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *adoptionRepo) ListByShelter(ctx context.Context, shelterID string) ([]adoptions.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]adoptions.Application, 0)
	for _, a := range r.s.appsByID {
		p, ok := r.s.petsByID[a.PetID]
		if ok && p.ShelterID == shelterID {
			out = append(out, a)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(items []adoptions.Application) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].AppliedAt.After(items[j].AppliedAt)
	})
}

// memTx opera sobre los mapas vivos del Store; el caller (inTx) ya sostiene
// el lock de escritura y restaura el snapshot si algo falla.
type memTx struct {
	s *Store
}

func (t *memTx) GetForUpdate(ctx context.Context, id string) (adoptions.Application, error) {
	a, ok := t.s.appsByID[id]
	if !ok {
		return adoptions.Application{}, adoptions.ErrNotFound
	}
	return a, nil
}

func (t *memTx) GetPetForUpdate(ctx context.Context, petID string) (pets.Pet, error) {
	p, ok := t.s.petsByID[petID]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (t *memTx) HasOtherPending(ctx context.Context, petID, excludeID string) (bool, error) {
	for _, a := range t.s.appsByID {
		if a.PetID == petID && a.ID != excludeID && a.Status == adoptions.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) HasActiveByUserAndPet(ctx context.Context, userID, petID string) (bool, error) {
	for _, a := range t.s.appsByID {
		if a.UserID != userID || a.PetID != petID {
			continue
		}
		if a.Status == adoptions.StatusPending || a.Status == adoptions.StatusApproved {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) Create(ctx context.Context, a adoptions.Application) error {
	t.s.appsByID[a.ID] = a
	return nil
}

func (t *memTx) UpdateStatus(ctx context.Context, id string, st adoptions.Status, decidedAt time.Time) error {
	a, ok := t.s.appsByID[id]
	if !ok {
		return adoptions.ErrNotFound
	}
	a.Status = st
	a.DecidedAt = &decidedAt
	t.s.appsByID[id] = a
	return nil
}

func (t *memTx) RejectOtherPending(ctx context.Context, petID, excludeID string, decidedAt time.Time) (int64, error) {
	var n int64
	for id, a := range t.s.appsByID {
		if a.PetID != petID || a.ID == excludeID || a.Status != adoptions.StatusPending {
			continue
		}
		a.Status = adoptions.StatusRejected
		a.DecidedAt = &decidedAt
		t.s.appsByID[id] = a
		n++
	}
	return n, nil
}

func (t *memTx) Delete(ctx context.Context, id string) error {
	if _, ok := t.s.appsByID[id]; !ok {
		return adoptions.ErrNotFound
	}
	delete(t.s.appsByID, id)
	return nil
}

func (t *memTx) SetPetStatus(ctx context.Context, petID string, st pets.Status, adoptedBy *string, updatedAt time.Time) error {
	p, ok := t.s.petsByID[petID]
	if !ok {
		return pets.ErrNotFound
	}
	p.Status = st
	p.AdoptedByUserID = adoptedBy
	p.UpdatedAt = updatedAt
	t.s.petsByID[petID] = p
	return nil
}
