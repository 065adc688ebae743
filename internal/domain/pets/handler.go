package pets

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

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		// Browse público (solo disponibles)
		pr.Get("/", listAvailableHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))

		// Gestión de listado (solo refugios)
		pr.Post("/", createPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})

	// Listado propio del refugio (incluye pending/adopted)
	r.Get("/shelter/pets", listShelterPetsHandler(svc))
}

type createPetRequest struct {
	Name     string `json:"name"`
	Breed    string `json:"breed"`
	Age      string `json:"age"`
	Gender   string `json:"gender"`
	Location string `json:"location"`
	Distance string `json:"distance"`
	Image    string `json:"image"`
}

type updatePetRequest struct {
	Name     *string `json:"name"`
	Breed    *string `json:"breed"`
	Age      *string `json:"age"`
	Gender   *string `json:"gender"`
	Location *string `json:"location"`
	Distance *string `json:"distance"`
	Image    *string `json:"image"`
}

type petResponse struct {
	ID              string    `json:"id"`
	ShelterID       string    `json:"shelter_id"`
	Name            string    `json:"name"`
	Breed           string    `json:"breed"`
	Age             string    `json:"age"`
	Gender          string    `json:"gender"`
	Location        string    `json:"location"`
	Distance        string    `json:"distance"`
	Image           string    `json:"image"`
	Status          string    `json:"status"`
	AdoptedByUserID *string   `json:"adopted_by_user_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func listAvailableHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAvailable(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := shelterClaims(w, r)
		if !ok {
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:     req.Name,
			Breed:    req.Breed,
			Age:      req.Age,
			Gender:   req.Gender,
			Location: req.Location,
			Distance: req.Distance,
			Image:    req.Image,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := shelterClaims(w, r)
		if !ok {
			return
		}

		var req updatePetRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), claims.UserID, UpdateInput{
			Name:     req.Name,
			Breed:    req.Breed,
			Age:      req.Age,
			Gender:   req.Gender,
			Location: req.Location,
			Distance: req.Distance,
			Image:    req.Image,
		})
		if err != nil {
			writePetError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := shelterClaims(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), claims.UserID); err != nil {
			writePetError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "pet deleted"})
	}
}

func listShelterPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := shelterClaims(w, r)
		if !ok {
			return
		}

		items, err := svc.ListByShelter(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// shelterClaims corta con 401/403 si el caller no es un refugio autenticado.
func shelterClaims(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return auth.Claims{}, false
	}
	if claims.Role != auth.RoleShelter {
		http.Error(w, "forbidden", http.StatusForbidden)
		return auth.Claims{}, false
	}
	return claims, true
}

func writePetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:              p.ID,
		ShelterID:       p.ShelterID,
		Name:            p.Name,
		Breed:           p.Breed,
		Age:             p.Age,
		Gender:          string(p.Gender),
		Location:        p.Location,
		Distance:        p.Distance,
		Image:           p.Image,
		Status:          string(p.Status),
		AdoptedByUserID: p.AdoptedByUserID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// (pets/adoptions) para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
