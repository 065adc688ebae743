package adoptions

import "time"

// Application es el registro de auditoría de una solicitud de adopción.
// Lo crea el Service (siempre pending); solo el Engine lo mueve a
// approved/rejected, y solo su dueño lo borra (withdraw). Borrar una
// solicitud approved no deshace la adopción.
type Application struct {
	ID     string
	UserID string
	PetID  string

	Status    Status
	AppliedAt time.Time
	DecidedAt *time.Time

	Form FormFields
}
