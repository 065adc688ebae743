package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"pet-adoption-backend/internal/domain/adoptions"
)

var applicationCols = []string{
	"id", "user_id", "pet_id",
	"status", "applied_at", "decided_at",
	"full_name", "email", "phone_number", "applicant_age",
	"residence_type", "own_or_rent", "has_yard",
	"owned_pets_before", "has_other_pets", "other_pets_details",
	"hours_alone", "adoption_reason",
}

var petCols = []string{
	"id", "shelter_id",
	"name", "breed", "age", "gender",
	"location", "distance", "image",
	"status", "adopted_by_user_id",
	"created_at", "updated_at",
}

func applicationRow(id, userID, petID, status string, appliedAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(applicationCols).AddRow(
		id, userID, petID,
		status, appliedAt, nil,
		"Jane Doe", "jane@example.com", "555-0101", "",
		"house", "own", "yes",
		"yes", "no", "",
		"4", "companionship",
	)
}

func petRow(id, shelterID, status string, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(petCols).AddRow(
		id, shelterID,
		"Milo", "mixed", "2 years", "male",
		"", "", "",
		status, nil,
		now, now,
	)
}

// La aprobación completa corre dentro de una sola transacción: lock de la
// solicitud, lock de la mascota, los tres UPDATE, COMMIT.
func TestAdoptionsRepo_ApproveFlow_SingleTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM applications WHERE id = \$1 FOR UPDATE`).
		WithArgs("app-1").
		WillReturnRows(applicationRow("app-1", "user-1", "pet-1", "pending", now))
	mock.ExpectQuery(`SELECT (.+) FROM pets WHERE id = \$1 FOR UPDATE`).
		WithArgs("pet-1").
		WillReturnRows(petRow("pet-1", "shelter-1", "pending", now))
	mock.ExpectExec(`UPDATE applications SET status = \$2, decided_at = \$3 WHERE id = \$1`).
		WithArgs("app-1", "approved", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE pets SET status = \$2, adopted_by_user_id = \$3, updated_at = \$4 WHERE id = \$1`).
		WithArgs("pet-1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE applications\s+SET status = 'rejected'`).
		WithArgs("pet-1", "app-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	eng := adoptions.NewEngine(NewAdoptionsRepo(db))
	app, err := eng.Decide(context.Background(), "shelter-1", "app-1", adoptions.DecisionApproved)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if app.Status != adoptions.StatusApproved {
		t.Fatalf("expected approved, got %s", app.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

// Si cualquier paso de la transacción falla, todo se revierte.
func TestAdoptionsRepo_InTx_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	now := time.Now()
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM applications WHERE id = \$1 FOR UPDATE`).
		WithArgs("app-1").
		WillReturnRows(applicationRow("app-1", "user-1", "pet-1", "pending", now))
	mock.ExpectQuery(`SELECT (.+) FROM pets WHERE id = \$1 FOR UPDATE`).
		WithArgs("pet-1").
		WillReturnError(boom)
	mock.ExpectRollback()

	eng := adoptions.NewEngine(NewAdoptionsRepo(db))
	if _, err := eng.Decide(context.Background(), "shelter-1", "app-1", adoptions.DecisionApproved); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

// Una decisión sobre una solicitud ya decidida no ejecuta ningún UPDATE.
func TestAdoptionsRepo_Decide_AlreadyDecidedRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM applications WHERE id = \$1 FOR UPDATE`).
		WithArgs("app-1").
		WillReturnRows(applicationRow("app-1", "user-1", "pet-1", "approved", now))
	mock.ExpectQuery(`SELECT (.+) FROM pets WHERE id = \$1 FOR UPDATE`).
		WithArgs("pet-1").
		WillReturnRows(petRow("pet-1", "shelter-1", "adopted", now))
	mock.ExpectRollback()

	eng := adoptions.NewEngine(NewAdoptionsRepo(db))
	if _, err := eng.Decide(context.Background(), "shelter-1", "app-1", adoptions.DecisionApproved); !errors.Is(err, adoptions.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAdoptionsRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM applications WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(applicationCols))

	repo := NewAdoptionsRepo(db)
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, adoptions.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAdoptionsRepo_ListByShelter_JoinsPets(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery(`FROM applications a\s+JOIN pets p ON p.id = a.pet_id\s+WHERE p.shelter_id = \$1`).
		WithArgs("shelter-1").
		WillReturnRows(applicationRow("app-1", "user-1", "pet-1", "pending", now))

	repo := NewAdoptionsRepo(db)
	items, err := repo.ListByShelter(context.Background(), "shelter-1")
	if err != nil {
		t.Fatalf("ListByShelter: %v", err)
	}
	if len(items) != 1 || items[0].ID != "app-1" {
		t.Fatalf("unexpected items: %#v", items)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
