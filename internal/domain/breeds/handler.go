package breeds

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
	r.Route("/breeds", func(br chi.Router) {
		br.Get("/", listBreedsHandler(svc))
		br.Post("/", createBreedHandler(svc))
		br.Get("/{breedID}", getBreedHandler(svc))
		br.Put("/{breedID}", updateBreedHandler(svc))
		br.Patch("/{breedID}", patchBreedHandler(svc))
		br.Delete("/{breedID}", deleteBreedHandler(svc))
	})
}

type createBreedRequest struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	PetTypeID string `json:"pet_type_id"`
}

type updateBreedRequest struct {
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	PetTypeID *string `json:"pet_type_id"`
}

type patchBreedRequest struct {
	Name      *string `json:"name"`
	Color     *string `json:"color"`
	PetTypeID *string `json:"pet_type_id"`
}

type breedResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	PetTypeID string    `json:"pet_type_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func createBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createBreedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		missing := map[string]string{}
		if strings.TrimSpace(req.Name) == "" {
			missing["name"] = "is required"
		}
		if strings.TrimSpace(req.Color) == "" {
			missing["color"] = "is required"
		}
		if strings.TrimSpace(req.PetTypeID) == "" {
			missing["pet_type_id"] = "is required"
		}
		if len(missing) > 0 {
			httpx.WriteFieldErrors(w, http.StatusBadRequest, missing)
			return
		}

		b, err := svc.Create(r.Context(), CreateInput{
			Name:      req.Name,
			Color:     req.Color,
			PetTypeID: req.PetTypeID,
		})
		if err != nil {
			respondBreedError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toBreedResponse(b))
	}
}

func listBreedsHandler(svc *Service) http.HandlerFunc {
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

		out := make([]breedResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBreedResponse(b))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		b, err := svc.GetByID(r.Context(), chi.URLParam(r, "breedID"))
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "breed not found")
			return
		}

		sub := access.Subject{UserID: claims.UserID, Privileged: claims.IsPrivileged()}
		if err := access.Authorize(sub, b); err != nil {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toBreedResponse(b))
	}
}

func updateBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		breedID := chi.URLParam(r, "breedID")
		current, err := svc.GetByID(r.Context(), breedID)
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "breed not found")
			return
		}

		sub := access.Subject{UserID: claims.UserID, Privileged: claims.IsPrivileged()}
		if err := access.Authorize(sub, current); err != nil {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req updateBreedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		missing := map[string]string{}
		if strings.TrimSpace(req.Name) == "" {
			missing["name"] = "is required"
		}
		if strings.TrimSpace(req.Color) == "" {
			missing["color"] = "is required"
		}
		if len(missing) > 0 {
			httpx.WriteFieldErrors(w, http.StatusBadRequest, missing)
			return
		}

		updated, err := svc.Update(r.Context(), breedID, UpdateInput{
			Name:      req.Name,
			Color:     req.Color,
			PetTypeID: req.PetTypeID,
		})
		if err != nil {
			respondBreedError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toBreedResponse(updated))
	}
}

func patchBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		breedID := chi.URLParam(r, "breedID")
		current, err := svc.GetByID(r.Context(), breedID)
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "breed not found")
			return
		}

		sub := access.Subject{UserID: claims.UserID, Privileged: claims.IsPrivileged()}
		if err := access.Authorize(sub, current); err != nil {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req patchBreedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		updated, err := svc.Patch(r.Context(), breedID, PatchInput{
			Name:      req.Name,
			Color:     req.Color,
			PetTypeID: req.PetTypeID,
		})
		if err != nil {
			respondBreedError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toBreedResponse(updated))
	}
}

func deleteBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		breedID := chi.URLParam(r, "breedID")
		current, err := svc.GetByID(r.Context(), breedID)
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "breed not found")
			return
		}

		sub := access.Subject{UserID: claims.UserID, Privileged: claims.IsPrivileged()}
		if err := access.Authorize(sub, current); err != nil {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		if err := svc.Delete(r.Context(), breedID); err != nil {
			respondBreedError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func respondBreedError(w http.ResponseWriter, err error) {
	var conflict *unique.ConflictError
	switch {
	case errors.As(err, &conflict):
		httpx.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{
			conflict.Field: "already exists",
		})
	case errors.Is(err, ErrInvalidReference):
		httpx.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{
			"pet_type_id": "pet type does not exist",
		})
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "breed not found")
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func toBreedResponse(b Breed) breedResponse {
	return breedResponse{
		ID:        b.ID,
		Name:      b.Name,
		Color:     b.Color,
		PetTypeID: b.PetTypeID,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
