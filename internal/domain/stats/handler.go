package stats

import (
	"encoding/json"
	"net/http"
	"strings"

	"pet-adoption-backend/internal/middleware"
	"pet-adoption-backend/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/admin/stats", overviewHandler(svc))
}

type overviewResponse struct {
	Pets struct {
		Total     int `json:"total"`
		Available int `json:"available"`
		Pending   int `json:"pending"`
		Adopted   int `json:"adopted"`
	} `json:"pets"`
	Applications struct {
		Total    int `json:"total"`
		Pending  int `json:"pending"`
		Approved int `json:"approved"`
		Rejected int `json:"rejected"`
	} `json:"applications"`
	CompletedAdoptions int `json:"completed_adoptions"`
}

func overviewHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != auth.RoleAdmin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		t, err := svc.Overview(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		var resp overviewResponse
		resp.Pets.Total = t.PetsTotal
		resp.Pets.Available = t.PetsAvailable
		resp.Pets.Pending = t.PetsPending
		resp.Pets.Adopted = t.PetsAdopted
		resp.Applications.Total = t.ApplicationsTotal
		resp.Applications.Pending = t.ApplicationsPending
		resp.Applications.Approved = t.ApplicationsApproved
		resp.Applications.Rejected = t.ApplicationsRejected
		resp.CompletedAdoptions = t.ApplicationsApproved

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
