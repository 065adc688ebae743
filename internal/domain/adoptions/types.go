package adoptions

// Status define el estado de una solicitud de adopción.
// pending es el único estado no terminal.
// @Enum pending, approved, rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Decision es el veredicto que un refugio aplica a una solicitud pending.
// @Enum approved, rejected
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// FormFields es la foto inmutable del formulario del solicitante, capturada
// al crear la solicitud. Nunca se re-deriva del perfil vivo del usuario:
// conserva lo que era cierto cuando se hizo el reclamo.
type FormFields struct {
	FullName         string
	Email            string
	PhoneNumber      string
	ApplicantAge     string
	ResidenceType    string
	OwnOrRent        string
	HasYard          string
	OwnedPetsBefore  string
	HasOtherPets     string
	OtherPetsDetails string
	HoursAlone       string
	AdoptionReason   string
}
