package pets

import "time"

// Status define la disponibilidad de una mascota dentro del ciclo de adopción.
// @Enum available, pending, adopted
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusAdopted   Status = "adopted"
)

// Gender define el sexo de la mascota.
// @Enum male, female, unknown
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// Pet representa una mascota publicada por un refugio.
//
// Status y AdoptedByUserID son campos de ciclo de vida: después de la creación
// solo los muta el módulo adoptions, dentro de sus transacciones. Update los
// ignora siempre.
type Pet struct {
	ID        string
	ShelterID string

	Name   string
	Breed  string
	Age    string // texto libre ("2 years", "6 months")
	Gender Gender

	Location string
	Distance string
	Image    string

	Status          Status
	AdoptedByUserID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
