package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pet-adoption-backend/internal/domain/adoptions"
	"pet-adoption-backend/internal/domain/pets"
)

func seedPet(t *testing.T, store *Store, shelterID string) pets.Pet {
	t.Helper()

	svc := pets.NewService(store.Pets())
	p, err := svc.Create(context.Background(), shelterID, pets.CreateInput{
		Name:  "Milo",
		Breed: "mixed",
	})
	if err != nil {
		t.Fatalf("seed pet: %v", err)
	}
	return p
}

func testForm() adoptions.FormFields {
	return adoptions.FormFields{
		FullName:        "Jane Doe",
		Email:           "jane@example.com",
		PhoneNumber:     "555-0101",
		ResidenceType:   "house",
		OwnOrRent:       "own",
		HasYard:         "yes",
		OwnedPetsBefore: "yes",
		HasOtherPets:    "no",
		HoursAlone:      "4",
		AdoptionReason:  "companionship",
	}
}

// Muchos solicitantes concurrentes para la misma mascota: exactamente uno
// gana el claim, el resto observa ClaimInFlight después del lock.
func TestStore_ConcurrentCreate_OneWinner(t *testing.T) {
	store := NewStore()
	p := seedPet(t, store, "shelter-1")
	svc := adoptions.NewService(store.Adoptions())

	const applicants = 16
	var created atomic.Int32
	var claimInFlight atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < applicants; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			userID := "user-" + string(rune('a'+n))
			_, err := svc.Create(context.Background(), userID, p.ID, testForm())
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, adoptions.ErrClaimInFlight):
				claimInFlight.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if created.Load() != 1 {
		t.Fatalf("expected exactly 1 winner, got %d", created.Load())
	}
	if claimInFlight.Load() != applicants-1 {
		t.Fatalf("expected %d ClaimInFlight, got %d", applicants-1, claimInFlight.Load())
	}

	got, err := store.Pets().GetByID(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != pets.StatusPending {
		t.Fatalf("expected pet pending, got %s", got.Status)
	}
}

func TestStore_InTx_RollsBackOnError(t *testing.T) {
	store := NewStore()
	p := seedPet(t, store, "shelter-1")

	sentinel := errors.New("boom")
	err := store.Adoptions().InTx(context.Background(), func(tx adoptions.Tx) error {
		if err := tx.SetPetStatus(context.Background(), p.ID, pets.StatusPending, nil, time.Now()); err != nil {
			return err
		}
		if err := tx.Create(context.Background(), adoptions.Application{ID: "app-1", UserID: "u", PetID: p.ID, Status: adoptions.StatusPending}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	got, err := store.Pets().GetByID(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != pets.StatusAvailable {
		t.Fatalf("expected rollback to available, got %s", got.Status)
	}
	if _, err := store.Adoptions().GetByID(context.Background(), "app-1"); !errors.Is(err, adoptions.ErrNotFound) {
		t.Fatalf("expected application write rolled back, got %v", err)
	}
}

func TestStore_DeletePet_CascadesApplications(t *testing.T) {
	store := NewStore()
	p := seedPet(t, store, "shelter-1")
	svc := adoptions.NewService(store.Adoptions())

	app, err := svc.Create(context.Background(), "user-1", p.ID, testForm())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.Pets().Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := store.Adoptions().GetByID(context.Background(), app.ID); !errors.Is(err, adoptions.ErrNotFound) {
		t.Fatalf("expected cascaded application delete, got %v", err)
	}
}

func TestStore_Stats_Totals(t *testing.T) {
	store := NewStore()
	p1 := seedPet(t, store, "shelter-1")
	seedPet(t, store, "shelter-1")

	svc := adoptions.NewService(store.Adoptions())
	if _, err := svc.Create(context.Background(), "user-1", p1.ID, testForm()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	totals, err := store.Stats().Totals(context.Background())
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals.PetsTotal != 2 || totals.PetsPending != 1 || totals.PetsAvailable != 1 {
		t.Fatalf("unexpected pet totals: %#v", totals)
	}
	if totals.ApplicationsTotal != 1 || totals.ApplicationsPending != 1 {
		t.Fatalf("unexpected application totals: %#v", totals)
	}
}
