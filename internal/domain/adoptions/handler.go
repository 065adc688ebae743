package adoptions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption-backend/internal/middleware"
	"pet-adoption-backend/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta las rutas del ciclo de adopción. limiter puede ser
// nil; si viene, se aplica solo al POST de solicitudes.
func RegisterRoutes(r chi.Router, svc *Service, eng *Engine, limiter func(http.Handler) http.Handler) {
	r.Route("/applications", func(ar chi.Router) {
		if limiter != nil {
			ar.With(limiter).Post("/", createApplicationHandler(svc))
		} else {
			ar.Post("/", createApplicationHandler(svc))
		}
		ar.Get("/", listMyApplicationsHandler(svc))
		ar.Delete("/{applicationID}", withdrawHandler(svc))
	})

	r.Get("/shelter/applications", listShelterApplicationsHandler(svc))
	r.Put("/shelter/applications/{applicationID}/status", decideHandler(eng))
}

type createApplicationRequest struct {
	PetID            string `json:"pet_id"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phone_number"`
	Age              string `json:"age"`
	ResidenceType    string `json:"residence_type"`
	OwnOrRent        string `json:"own_or_rent"`
	HasYard          string `json:"has_yard"`
	OwnedPetsBefore  string `json:"owned_pets_before"`
	HasOtherPets     string `json:"has_other_pets"`
	OtherPetsDetails string `json:"other_pets_details"`
	HoursAlone       string `json:"hours_alone"`
	AdoptionReason   string `json:"adoption_reason"`
}

type decideRequest struct {
	Status string `json:"status"` // approved | rejected
}

type applicationResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	PetID     string     `json:"pet_id"`
	Status    string     `json:"status"`
	AppliedAt time.Time  `json:"applied_at"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`

	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phone_number"`
	Age              string `json:"age,omitempty"`
	ResidenceType    string `json:"residence_type"`
	OwnOrRent        string `json:"own_or_rent"`
	HasYard          string `json:"has_yard"`
	OwnedPetsBefore  string `json:"owned_pets_before"`
	HasOtherPets     string `json:"has_other_pets"`
	OtherPetsDetails string `json:"other_pets_details,omitempty"`
	HoursAlone       string `json:"hours_alone"`
	AdoptionReason   string `json:"adoption_reason"`
}

func createApplicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := userClaims(w, r)
		if !ok {
			return
		}

		var req createApplicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		app, err := svc.Create(r.Context(), claims.UserID, req.PetID, FormFields{
			FullName:         req.FullName,
			Email:            req.Email,
			PhoneNumber:      req.PhoneNumber,
			ApplicantAge:     req.Age,
			ResidenceType:    req.ResidenceType,
			OwnOrRent:        req.OwnOrRent,
			HasYard:          req.HasYard,
			OwnedPetsBefore:  req.OwnedPetsBefore,
			HasOtherPets:     req.HasOtherPets,
			OtherPetsDetails: req.OtherPetsDetails,
			HoursAlone:       req.HoursAlone,
			AdoptionReason:   req.AdoptionReason,
		})
		if err != nil {
			writeAdoptionError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toApplicationResponse(app))
	}
}

func listMyApplicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := userClaims(w, r)
		if !ok {
			return
		}

		items, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]applicationResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toApplicationResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func withdrawHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := userClaims(w, r)
		if !ok {
			return
		}

		if err := svc.Withdraw(r.Context(), claims.UserID, chi.URLParam(r, "applicationID")); err != nil {
			writeAdoptionError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "application withdrawn"})
	}
}

func listShelterApplicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := userClaims(w, r)
		if !ok {
			return
		}
		if claims.Role != auth.RoleShelter {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListByShelter(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]applicationResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toApplicationResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func decideHandler(eng *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := userClaims(w, r)
		if !ok {
			return
		}
		if claims.Role != auth.RoleShelter {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req decideRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		app, err := eng.Decide(r.Context(), claims.UserID, chi.URLParam(r, "applicationID"), Decision(strings.TrimSpace(req.Status)))
		if err != nil {
			writeAdoptionError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toApplicationResponse(app))
	}
}

func userClaims(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return auth.Claims{}, false
	}
	return claims, true
}

func writeAdoptionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "application not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrAlreadyAdopted),
		errors.Is(err, ErrClaimInFlight),
		errors.Is(err, ErrDuplicateApplication),
		errors.Is(err, ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		// ErrDataIntegrity y fallas de infraestructura: el caller reintenta
		// la operación completa.
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toApplicationResponse(a Application) applicationResponse {
	return applicationResponse{
		ID:               a.ID,
		UserID:           a.UserID,
		PetID:            a.PetID,
		Status:           string(a.Status),
		AppliedAt:        a.AppliedAt,
		DecidedAt:        a.DecidedAt,
		FullName:         a.Form.FullName,
		Email:            a.Form.Email,
		PhoneNumber:      a.Form.PhoneNumber,
		Age:              a.Form.ApplicantAge,
		ResidenceType:    a.Form.ResidenceType,
		OwnOrRent:        a.Form.OwnOrRent,
		HasYard:          a.Form.HasYard,
		OwnedPetsBefore:  a.Form.OwnedPetsBefore,
		HasOtherPets:     a.Form.HasOtherPets,
		OtherPetsDetails: a.Form.OtherPetsDetails,
		HoursAlone:       a.Form.HoursAlone,
		AdoptionReason:   a.Form.AdoptionReason,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// (pets/adoptions) para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
