package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-registry/internal/domain/access"
	"pet-registry/internal/middleware"
	"pet-registry/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Put("/{petID}", updatePetHandler(svc))
		pr.Patch("/{petID}", patchPetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type createPetRequest struct {
	Name    string `json:"name"`
	BreedID string `json:"breed_id"`
}

type updatePetRequest struct {
	Name    string  `json:"name"`
	BreedID *string `json:"breed_id"`
}

type patchPetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name    *string `json:"name"`
	BreedID *string `json:"breed_id"`
}

type petResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	BreedID   string    `json:"breed_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func createPetHandler(svc *Service) http.HandlerFunc {
	// El owner es siempre el requester autenticado.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		missing := map[string]string{}
		if strings.TrimSpace(req.Name) == "" {
			missing["name"] = "is required"
		}
		if strings.TrimSpace(req.BreedID) == "" {
			missing["breed_id"] = "is required"
		}
		if len(missing) > 0 {
			httpx.WriteFieldErrors(w, http.StatusBadRequest, missing)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:    req.Name,
			BreedID: req.BreedID,
		})
		if err != nil {
			respondPetError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "pet not found")
			return
		}

		sub := access.Subject{UserID: claims.UserID, Privileged: claims.IsPrivileged()}
		if err := access.Authorize(sub, p); err != nil {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		petID := chi.URLParam(r, "petID")
		current, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "pet not found")
			return
		}

		sub := access.Subject{UserID: claims.UserID, Privileged: claims.IsPrivileged()}
		if err := access.Authorize(sub, current); err != nil {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			httpx.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"name": "is required"})
			return
		}

		updated, err := svc.Update(r.Context(), petID, UpdateInput{
			Name:    req.Name,
			BreedID: req.BreedID,
		})
		if err != nil {
			respondPetError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func patchPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		petID := chi.URLParam(r, "petID")
		current, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "pet not found")
			return
		}

		sub := access.Subject{UserID: claims.UserID, Privileged: claims.IsPrivileged()}
		if err := access.Authorize(sub, current); err != nil {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req patchPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		updated, err := svc.Patch(r.Context(), petID, PatchInput{
			Name:    req.Name,
			BreedID: req.BreedID,
		})
		if err != nil {
			respondPetError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		petID := chi.URLParam(r, "petID")
		current, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "pet not found")
			return
		}

		sub := access.Subject{UserID: claims.UserID, Privileged: claims.IsPrivileged()}
		if err := access.Authorize(sub, current); err != nil {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		if err := svc.Delete(r.Context(), petID); err != nil {
			respondPetError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func respondPetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidReference):
		httpx.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{
			"breed_id": "breed does not exist",
		})
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "pet not found")
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		Name:      p.Name,
		OwnerID:   p.OwnerID,
		BreedID:   p.BreedID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
