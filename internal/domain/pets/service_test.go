package pets

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	cur, ok := r.byID[p.ID]
	if !ok {
		return ErrNotFound
	}
	p.Status = cur.Status
	p.AdoptedByUserID = cur.AdoptedByUserID
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListAvailable(ctx context.Context) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.Status == StatusAvailable {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) ListByShelter(ctx context.Context, shelterID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.ShelterID == shelterID {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestService_Create_DefaultsToAvailable(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Create(context.Background(), "shelter-1", CreateInput{
		Name:  "Milo",
		Breed: "mixed",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.Status != StatusAvailable {
		t.Fatalf("expected available, got %s", p.Status)
	}
	if p.Gender != GenderUnknown {
		t.Fatalf("expected gender default unknown, got %s", p.Gender)
	}
	if p.CreatedAt != now || p.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}
}

func TestService_Create_RequiresNameAndBreed(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), "shelter-1", CreateInput{Name: " ", Breed: "mixed"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Update_OnlyOwnerShelter(t *testing.T) {
	repo := newTestRepo()
	repo.byID["pet-1"] = Pet{ID: "pet-1", ShelterID: "shelter-1", Name: "Milo", Breed: "mixed", Status: StatusAvailable}
	svc := NewService(repo)

	name := "Milo Updated"
	_, err := svc.Update(context.Background(), "pet-1", "shelter-2", UpdateInput{Name: &name})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	p, err := svc.Update(context.Background(), "pet-1", "shelter-1", UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if p.Name != "Milo Updated" {
		t.Fatalf("expected name updated, got %s", p.Name)
	}
}

func TestService_Update_NeverTouchesLifecycle(t *testing.T) {
	repo := newTestRepo()
	adoptedBy := "user-1"
	repo.byID["pet-1"] = Pet{ID: "pet-1", ShelterID: "shelter-1", Name: "Milo", Breed: "mixed", Status: StatusAdopted, AdoptedByUserID: &adoptedBy}
	svc := NewService(repo)

	name := "Otro"
	p, err := svc.Update(context.Background(), "pet-1", "shelter-1", UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if p.Status != StatusAdopted {
		t.Fatalf("update must not move lifecycle status, got %s", p.Status)
	}
	if p.AdoptedByUserID == nil || *p.AdoptedByUserID != "user-1" {
		t.Fatalf("update must not clear adopted_by")
	}
}

func TestService_Delete_OnlyOwnerShelter(t *testing.T) {
	repo := newTestRepo()
	repo.byID["pet-1"] = Pet{ID: "pet-1", ShelterID: "shelter-1"}
	svc := NewService(repo)

	if err := svc.Delete(context.Background(), "pet-1", "shelter-2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), "pet-1", "shelter-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok := repo.byID["pet-1"]; ok {
		t.Fatalf("expected pet deleted")
	}
}
