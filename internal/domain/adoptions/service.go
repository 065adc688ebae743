package adoptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-backend/internal/domain/pets"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")

	// ErrAlreadyAdopted: la mascota ya fue adoptada.
	ErrAlreadyAdopted = errors.New("pet already adopted")
	// ErrClaimInFlight: otra solicitud pending ya reclama la mascota.
	ErrClaimInFlight = errors.New("pet already has a pending request")
	// ErrDuplicateApplication: el par (user, pet) ya tiene una solicitud activa.
	ErrDuplicateApplication = errors.New("already applied for this pet")
	// ErrInvalidTransition: approve/reject solo es legal desde pending.
	ErrInvalidTransition = errors.New("only pending requests can be updated")
	// ErrDataIntegrity: la solicitud referencia una mascota inexistente.
	ErrDataIntegrity = errors.New("application references missing pet")
)

// Service crea y retira solicitudes. Es stateless: toda la coordinación
// vive en el row-lock de la mascota dentro de InTx.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Create registra una solicitud pending y marca la mascota como pending,
// en una sola transacción. El lock exclusivo sobre la fila de la mascota se
// toma antes de evaluar cualquier predicado: dos solicitantes simultáneos no
// pueden observar ambos "available". El orden de los chequeos es fijo:
// adopted, duplicado por (user, pet), claim en vuelo.
func (s *Service) Create(ctx context.Context, userID, petID string, form FormFields) (Application, error) {
	userID = strings.TrimSpace(userID)
	petID = strings.TrimSpace(petID)
	if userID == "" || petID == "" {
		return Application{}, ErrInvalidInput
	}
	if err := validateForm(form); err != nil {
		return Application{}, err
	}

	app := Application{
		ID:        uuid.NewString(),
		UserID:    userID,
		PetID:     petID,
		Status:    StatusPending,
		AppliedAt: s.now(),
		Form:      trimForm(form),
	}

	err := s.repo.InTx(ctx, func(tx Tx) error {
		pet, err := tx.GetPetForUpdate(ctx, petID)
		if err != nil {
			return err
		}

		if pet.Status == pets.StatusAdopted {
			return ErrAlreadyAdopted
		}
		// El duplicado del propio caller se reporta antes que el claim
		// genérico: es el error más específico para ese caso.
		if dup, err := tx.HasActiveByUserAndPet(ctx, userID, petID); err != nil {
			return err
		} else if dup {
			return ErrDuplicateApplication
		}

		if pet.Status == pets.StatusPending {
			return ErrClaimInFlight
		}
		// El status de la mascota es la fuente de verdad, pero una fila
		// pending huérfana también bloquea el reclamo.
		if pending, err := tx.HasOtherPending(ctx, petID, ""); err != nil {
			return err
		} else if pending {
			return ErrClaimInFlight
		}

		if err := tx.Create(ctx, app); err != nil {
			return err
		}
		return tx.SetPetStatus(ctx, petID, pets.StatusPending, nil, app.AppliedAt)
	})
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}

	return app, nil
}

// Withdraw borra una solicitud propia. Solo si era pending y no queda otra
// solicitud pending sobre la mascota, la mascota vuelve a available (único
// camino que mueve Pet.Status hacia atrás desde pending). Retirar una
// solicitud approved no revierte la adopción: borra solo el registro.
func (s *Service) Withdraw(ctx context.Context, userID, applicationID string) error {
	userID = strings.TrimSpace(userID)
	applicationID = strings.TrimSpace(applicationID)
	if userID == "" || applicationID == "" {
		return ErrInvalidInput
	}

	return s.repo.InTx(ctx, func(tx Tx) error {
		app, err := tx.GetForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		// La propiedad se reporta como not found, no como forbidden:
		// no filtramos la existencia de solicitudes ajenas.
		if app.UserID != userID {
			return ErrNotFound
		}

		if app.Status == StatusPending {
			pet, err := tx.GetPetForUpdate(ctx, app.PetID)
			switch {
			case errors.Is(err, pets.ErrNotFound):
				// Mascota ya borrada: solo queda borrar la solicitud.
			case err != nil:
				return err
			default:
				other, err := tx.HasOtherPending(ctx, app.PetID, app.ID)
				if err != nil {
					return err
				}
				if !other && pet.Status != pets.StatusAdopted {
					if err := tx.SetPetStatus(ctx, app.PetID, pets.StatusAvailable, nil, s.now()); err != nil {
						return err
					}
				}
			}
		}

		return tx.Delete(ctx, app.ID)
	})
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListByShelter(ctx context.Context, shelterID string) ([]Application, error) {
	shelterID = strings.TrimSpace(shelterID)
	if shelterID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByShelter(ctx, shelterID)
}

// validateForm exige los campos required del formulario de adopción.
// OtherPetsDetails y ApplicantAge son opcionales.
func validateForm(f FormFields) error {
	required := []string{
		f.FullName,
		f.Email,
		f.PhoneNumber,
		f.ResidenceType,
		f.OwnOrRent,
		f.HasYard,
		f.OwnedPetsBefore,
		f.HasOtherPets,
		f.HoursAlone,
		f.AdoptionReason,
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return ErrInvalidInput
		}
	}
	return nil
}

func trimForm(f FormFields) FormFields {
	return FormFields{
		FullName:         strings.TrimSpace(f.FullName),
		Email:            strings.TrimSpace(f.Email),
		PhoneNumber:      strings.TrimSpace(f.PhoneNumber),
		ApplicantAge:     strings.TrimSpace(f.ApplicantAge),
		ResidenceType:    strings.TrimSpace(f.ResidenceType),
		OwnOrRent:        strings.TrimSpace(f.OwnOrRent),
		HasYard:          strings.TrimSpace(f.HasYard),
		OwnedPetsBefore:  strings.TrimSpace(f.OwnedPetsBefore),
		HasOtherPets:     strings.TrimSpace(f.HasOtherPets),
		OtherPetsDetails: strings.TrimSpace(f.OtherPetsDetails),
		HoursAlone:       strings.TrimSpace(f.HoursAlone),
		AdoptionReason:   strings.TrimSpace(f.AdoptionReason),
	}
}
