package adoptions

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption-backend/internal/domain/pets"
)

func TestEngine_Approve_CascadesSiblingsAndAdoptsPet(t *testing.T) {
	// Dos pending sembradas: el approve de una rechaza la otra en cascada.
	repo := newTestRepo()
	repo.seedPet("pet-1", "shelter-1", pets.StatusPending)
	repo.seedApp("app-1", "user-1", "pet-1", StatusPending)
	repo.seedApp("app-2", "user-2", "pet-1", StatusPending)

	eng := NewEngine(repo)
	now := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)
	eng.now = func() time.Time { return now }

	out, err := eng.Decide(context.Background(), "shelter-1", "app-1", DecisionApproved)
	if err != nil {
		t.Fatalf("Decide error: %v", err)
	}
	if out.Status != StatusApproved {
		t.Fatalf("expected approved, got %s", out.Status)
	}
	if out.DecidedAt == nil || !out.DecidedAt.Equal(now) {
		t.Fatalf("expected DecidedAt = now")
	}

	p := repo.pets["pet-1"]
	if p.Status != pets.StatusAdopted {
		t.Fatalf("expected pet adopted, got %s", p.Status)
	}
	if p.AdoptedByUserID == nil || *p.AdoptedByUserID != "user-1" {
		t.Fatalf("expected adopted_by = user-1, got %v", p.AdoptedByUserID)
	}

	sibling := repo.apps["app-2"]
	if sibling.Status != StatusRejected {
		t.Fatalf("expected sibling force-rejected, got %s", sibling.Status)
	}
}

func TestEngine_Reject_LastPending_RevertsPet(t *testing.T) {
	repo := newTestRepo()
	repo.seedPet("pet-1", "shelter-1", pets.StatusPending)
	repo.seedApp("app-1", "user-1", "pet-1", StatusPending)
	eng := NewEngine(repo)

	out, err := eng.Decide(context.Background(), "shelter-1", "app-1", DecisionRejected)
	if err != nil {
		t.Fatalf("Decide error: %v", err)
	}
	if out.Status != StatusRejected {
		t.Fatalf("expected rejected, got %s", out.Status)
	}

	p := repo.pets["pet-1"]
	if p.Status != pets.StatusAvailable {
		t.Fatalf("expected pet available after last reject, got %s", p.Status)
	}
	if p.AdoptedByUserID != nil {
		t.Fatalf("expected adopted_by cleared")
	}
}

func TestEngine_Reject_WithSibling_PetStaysPending(t *testing.T) {
	repo := newTestRepo()
	repo.seedPet("pet-1", "shelter-1", pets.StatusPending)
	repo.seedApp("app-1", "user-1", "pet-1", StatusPending)
	repo.seedApp("app-2", "user-2", "pet-1", StatusPending)
	eng := NewEngine(repo)

	if _, err := eng.Decide(context.Background(), "shelter-1", "app-1", DecisionRejected); err != nil {
		t.Fatalf("Decide error: %v", err)
	}

	// Otro solicitante sigue esperando decisión: la mascota no se libera.
	if repo.pets["pet-1"].Status != pets.StatusPending {
		t.Fatalf("expected pet to stay pending")
	}
	if repo.apps["app-2"].Status != StatusPending {
		t.Fatalf("sibling must stay pending on reject")
	}
}

func TestEngine_Decide_ForeignShelter_Forbidden(t *testing.T) {
	repo := newTestRepo()
	repo.seedPet("pet-1", "shelter-1", pets.StatusPending)
	repo.seedApp("app-1", "user-1", "pet-1", StatusPending)
	eng := NewEngine(repo)

	_, err := eng.Decide(context.Background(), "shelter-2", "app-1", DecisionApproved)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.apps["app-1"].Status != StatusPending {
		t.Fatalf("application must stay pending after forbidden attempt")
	}
}

func TestEngine_Decide_AlreadyDecided_InvalidTransition(t *testing.T) {
	repo := newTestRepo()
	repo.seedPet("pet-1", "shelter-1", pets.StatusAdopted)
	repo.seedApp("app-1", "user-1", "pet-1", StatusApproved)
	eng := NewEngine(repo)

	// Reintento sobre una solicitud ya decidida: se rechaza, no se re-aplica.
	_, err := eng.Decide(context.Background(), "shelter-1", "app-1", DecisionApproved)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestEngine_Decide_MissingApplication_NotFound(t *testing.T) {
	repo := newTestRepo()
	eng := NewEngine(repo)

	_, err := eng.Decide(context.Background(), "shelter-1", "nope", DecisionRejected)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEngine_Decide_OrphanPet_DataIntegrity(t *testing.T) {
	repo := newTestRepo()
	repo.seedApp("app-1", "user-1", "gone-pet", StatusPending)
	eng := NewEngine(repo)

	_, err := eng.Decide(context.Background(), "shelter-1", "app-1", DecisionApproved)
	if !errors.Is(err, ErrDataIntegrity) {
		t.Fatalf("expected ErrDataIntegrity, got %v", err)
	}
}

func TestEngine_Decide_UnknownDecision_InvalidInput(t *testing.T) {
	repo := newTestRepo()
	eng := NewEngine(repo)

	_, err := eng.Decide(context.Background(), "shelter-1", "app-1", Decision("maybe"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEngine_Reject_PetAdopted_NeverReverts(t *testing.T) {
	// Data sucia: pending residual sobre mascota ya adoptada. El reject no
	// puede devolverla a available.
	repo := newTestRepo()
	adoptedBy := "user-9"
	repo.pets["pet-1"] = pets.Pet{ID: "pet-1", ShelterID: "shelter-1", Status: pets.StatusAdopted, AdoptedByUserID: &adoptedBy}
	repo.seedApp("app-1", "user-1", "pet-1", StatusPending)
	eng := NewEngine(repo)

	if _, err := eng.Decide(context.Background(), "shelter-1", "app-1", DecisionRejected); err != nil {
		t.Fatalf("Decide error: %v", err)
	}

	p := repo.pets["pet-1"]
	if p.Status != pets.StatusAdopted {
		t.Fatalf("adopted pet must never revert on reject, got %s", p.Status)
	}
	if p.AdoptedByUserID == nil || *p.AdoptedByUserID != "user-9" {
		t.Fatalf("adopted_by must be preserved")
	}
}
