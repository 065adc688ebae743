package auth

// Role es el rol pre-validado que entrega el servicio de identidad.
type Role string

const (
	RoleUser    Role = "user"
	RoleShelter Role = "shelter"
	RoleAdmin   Role = "admin"
)

// Claims representa la identidad extraída del token. El core nunca
// autentica: solo consume user id y rol ya verificados.
type Claims struct {
	UserID string
	Role   Role
	Email  string
}
