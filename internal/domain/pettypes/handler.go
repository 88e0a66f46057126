package pettypes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-registry/internal/domain/access"
	"pet-registry/internal/domain/unique"
	"pet-registry/internal/middleware"
	"pet-registry/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pet-types", func(tr chi.Router) {
		tr.Get("/", listPetTypesHandler(svc))
		tr.Post("/", createPetTypeHandler(svc))
		tr.Get("/{typeID}", getPetTypeHandler(svc))
		tr.Put("/{typeID}", updatePetTypeHandler(svc))
		tr.Patch("/{typeID}", patchPetTypeHandler(svc))
		tr.Delete("/{typeID}", deletePetTypeHandler(svc))
	})
}

type createPetTypeRequest struct {
	Name        string `json:"name"`
	LimbsNumber *int   `json:"limbs_number"`
}

type updatePetTypeRequest struct {
	Name        string `json:"name"`
	LimbsNumber *int   `json:"limbs_number"`
}

type patchPetTypeRequest struct {
	Name        *string `json:"name"`
	LimbsNumber *int    `json:"limbs_number"`
}

type petTypeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	LimbsNumber int       `json:"limbs_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func createPetTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createPetTypeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		missing := map[string]string{}
		if strings.TrimSpace(req.Name) == "" {
			missing["name"] = "is required"
		}
		if req.LimbsNumber == nil {
			missing["limbs_number"] = "is required"
		} else if *req.LimbsNumber < 0 {
			missing["limbs_number"] = "must be non-negative"
		}
		if len(missing) > 0 {
			httpx.WriteFieldErrors(w, http.StatusBadRequest, missing)
			return
		}

		t, err := svc.Create(r.Context(), CreateInput{
			Name:        req.Name,
			LimbsNumber: *req.LimbsNumber,
		})
		if err != nil {
			respondPetTypeError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toPetTypeResponse(t))
	}
}

func listPetTypesHandler(svc *Service) http.HandlerFunc {
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

		out := make([]petTypeResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toPetTypeResponse(t))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getPetTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		t, err := svc.GetByID(r.Context(), chi.URLParam(r, "typeID"))
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "pet type not found")
			return
		}

		sub := access.Subject{UserID: claims.UserID, Privileged: claims.IsPrivileged()}
		if err := access.Authorize(sub, t); err != nil {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toPetTypeResponse(t))
	}
}

func updatePetTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		typeID := chi.URLParam(r, "typeID")
		current, err := svc.GetByID(r.Context(), typeID)
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "pet type not found")
			return
		}

		sub := access.Subject{UserID: claims.UserID, Privileged: claims.IsPrivileged()}
		if err := access.Authorize(sub, current); err != nil {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req updatePetTypeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			httpx.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"name": "is required"})
			return
		}

		updated, err := svc.Update(r.Context(), typeID, UpdateInput{
			Name:        req.Name,
			LimbsNumber: req.LimbsNumber,
		})
		if err != nil {
			respondPetTypeError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toPetTypeResponse(updated))
	}
}

func patchPetTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		typeID := chi.URLParam(r, "typeID")
		current, err := svc.GetByID(r.Context(), typeID)
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "pet type not found")
			return
		}

		sub := access.Subject{UserID: claims.UserID, Privileged: claims.IsPrivileged()}
		if err := access.Authorize(sub, current); err != nil {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req patchPetTypeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		updated, err := svc.Patch(r.Context(), typeID, PatchInput{
			Name:        req.Name,
			LimbsNumber: req.LimbsNumber,
		})
		if err != nil {
			respondPetTypeError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toPetTypeResponse(updated))
	}
}

func deletePetTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		typeID := chi.URLParam(r, "typeID")
		current, err := svc.GetByID(r.Context(), typeID)
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "pet type not found")
			return
		}

		sub := access.Subject{UserID: claims.UserID, Privileged: claims.IsPrivileged()}
		if err := access.Authorize(sub, current); err != nil {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		if err := svc.Delete(r.Context(), typeID); err != nil {
			respondPetTypeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func respondPetTypeError(w http.ResponseWriter, err error) {
	var conflict *unique.ConflictError
	switch {
	case errors.As(err, &conflict):
		httpx.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{
			conflict.Field: "already exists",
		})
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "pet type not found")
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func toPetTypeResponse(t PetType) petTypeResponse {
	return petTypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		LimbsNumber: t.LimbsNumber,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
