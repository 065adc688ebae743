package adoptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-backend/internal/domain/pets"
)

// Engine procesa decisiones del refugio sobre solicitudes pending y cascadea
// el estado de la mascota y de las solicitudes hermanas en la misma
// transacción.
//
// Orden de locks fijo: solicitud primero, mascota después. Create/Withdraw
// toman la solicitud (si aplica) y la mascota en el mismo orden, así que no
// hay ciclo posible con el lock manager de la base.
type Engine struct {
	repo Repository
	now  func() time.Time
}

func NewEngine(repo Repository) *Engine {
	return &Engine{
		repo: repo,
		now:  time.Now,
	}
}

// Decide aplica approve/reject a una solicitud pending.
//
//	pending --approve--> approved   mascota adopted + adopted_by;
//	                                hermanas pending -> rejected (batch)
//	pending --reject-->  rejected   mascota vuelve a available solo si no
//	                                queda otra pending y no está adopted
//
// Cualquier otro estado de partida devuelve ErrInvalidTransition, lo que hace
// la operación idempotente frente a reintentos: una segunda decisión sobre la
// misma solicitud se rechaza, no se re-aplica.
func (e *Engine) Decide(ctx context.Context, shelterUserID, applicationID string, decision Decision) (Application, error) {
	shelterUserID = strings.TrimSpace(shelterUserID)
	applicationID = strings.TrimSpace(applicationID)
	if shelterUserID == "" || applicationID == "" {
		return Application{}, ErrInvalidInput
	}
	if decision != DecisionApproved && decision != DecisionRejected {
		return Application{}, ErrInvalidInput
	}

	var out Application
	err := e.repo.InTx(ctx, func(tx Tx) error {
		app, err := tx.GetForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}

		pet, err := tx.GetPetForUpdate(ctx, app.PetID)
		if err != nil {
			if errors.Is(err, pets.ErrNotFound) {
				// Referencia huérfana: falla de integridad, no un 404 normal.
				return ErrDataIntegrity
			}
			return err
		}

		if pet.ShelterID != shelterUserID {
			return ErrForbidden
		}
		if app.Status != StatusPending {
			return ErrInvalidTransition
		}

		now := e.now()

		if decision == DecisionApproved {
			if err := tx.UpdateStatus(ctx, app.ID, StatusApproved, now); err != nil {
				return err
			}
			adoptedBy := app.UserID
			if err := tx.SetPetStatus(ctx, pet.ID, pets.StatusAdopted, &adoptedBy, now); err != nil {
				return err
			}
			if _, err := tx.RejectOtherPending(ctx, pet.ID, app.ID, now); err != nil {
				return err
			}
			app.Status = StatusApproved
		} else {
			if err := tx.UpdateStatus(ctx, app.ID, StatusRejected, now); err != nil {
				return err
			}
			other, err := tx.HasOtherPending(ctx, pet.ID, app.ID)
			if err != nil {
				return err
			}
			// Solo revertimos si es seguro que nadie más espera decisión.
			if !other && pet.Status != pets.StatusAdopted {
				if err := tx.SetPetStatus(ctx, pet.ID, pets.StatusAvailable, nil, now); err != nil {
					return err
				}
			}
			app.Status = StatusRejected
		}

		app.DecidedAt = &now
		out = app
		return nil
	})
	if err != nil {
		return Application{}, err
	}
	return out, nil
}
