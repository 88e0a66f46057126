package users

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
	"pet-registry/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, issuer auth.TokenIssuer) {
	r.Post("/login", loginHandler(svc, issuer))

	r.Route("/users", func(ur chi.Router) {
		ur.Get("/", listUsersHandler(svc))

		// Registro abierto: es la única forma de crear la primera cuenta.
		ur.Post("/", createUserHandler(svc))

		ur.Get("/{userID}", getUserHandler(svc))
		ur.Put("/{userID}", updateUserHandler(svc))
		ur.Patch("/{userID}", patchUserHandler(svc))
		ur.Delete("/{userID}", deleteUserHandler(svc))
	})
}

type createUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	Role        string `json:"role"`
}

type updateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`

	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	Role        *string `json:"role"`
}

type patchUserRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	Role        *string `json:"role"`
}

// userResponse nunca incluye el password hash.
type userResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Email string `json:"email"`
}

func loginHandler(svc *Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, err := svc.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := issuer.Issue(auth.Claims{UserID: u.ID, Email: u.Email, Role: u.Role})
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, loginResponse{
			Token: token,
			ID:    u.ID,
			Email: u.Email,
		})
	}
}

func createUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		missing := map[string]string{}
		if strings.TrimSpace(req.Username) == "" {
			missing["username"] = "is required"
		}
		if strings.TrimSpace(req.Email) == "" {
			missing["email"] = "is required"
		}
		if req.Password == "" {
			missing["password"] = "is required"
		}
		if len(missing) > 0 {
			httpx.WriteFieldErrors(w, http.StatusBadRequest, missing)
			return
		}

		u, err := svc.Create(r.Context(), CreateInput{
			Username:    req.Username,
			Email:       req.Email,
			Password:    req.Password,
			PhoneNumber: req.PhoneNumber,
			Address:     req.Address,
			Role:        req.Role,
		})
		if err != nil {
			respondUserError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

func listUsersHandler(svc *Service) http.HandlerFunc {
	// La colección completa, sin filtros ni paginación.
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

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		u, err := svc.GetByID(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "user not found")
			return
		}

		sub := access.Subject{UserID: claims.UserID, Privileged: claims.IsPrivileged()}
		if err := access.Authorize(sub, u); err != nil {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		userID := chi.URLParam(r, "userID")
		current, err := svc.GetByID(r.Context(), userID)
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "user not found")
			return
		}

		sub := access.Subject{UserID: claims.UserID, Privileged: claims.IsPrivileged()}
		if err := access.Authorize(sub, current); err != nil {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req updateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		missing := map[string]string{}
		if strings.TrimSpace(req.Username) == "" {
			missing["username"] = "is required"
		}
		if strings.TrimSpace(req.Email) == "" {
			missing["email"] = "is required"
		}
		if req.Password == "" {
			missing["password"] = "is required"
		}
		if len(missing) > 0 {
			httpx.WriteFieldErrors(w, http.StatusBadRequest, missing)
			return
		}

		updated, err := svc.Update(r.Context(), userID, UpdateInput{
			Username:    req.Username,
			Email:       req.Email,
			Password:    req.Password,
			PhoneNumber: req.PhoneNumber,
			Address:     req.Address,
			Role:        req.Role,
		})
		if err != nil {
			respondUserError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toUserResponse(updated))
	}
}

func patchUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		userID := chi.URLParam(r, "userID")
		current, err := svc.GetByID(r.Context(), userID)
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "user not found")
			return
		}

		sub := access.Subject{UserID: claims.UserID, Privileged: claims.IsPrivileged()}
		if err := access.Authorize(sub, current); err != nil {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req patchUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		updated, err := svc.Patch(r.Context(), userID, PatchInput{
			Username:    req.Username,
			Email:       req.Email,
			Password:    req.Password,
			PhoneNumber: req.PhoneNumber,
			Address:     req.Address,
			Role:        req.Role,
		})
		if err != nil {
			respondUserError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toUserResponse(updated))
	}
}

func deleteUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		userID := chi.URLParam(r, "userID")
		current, err := svc.GetByID(r.Context(), userID)
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, "user not found")
			return
		}

		sub := access.Subject{UserID: claims.UserID, Privileged: claims.IsPrivileged()}
		if err := access.Authorize(sub, current); err != nil {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		if err := svc.Delete(r.Context(), userID); err != nil {
			respondUserError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func respondUserError(w http.ResponseWriter, err error) {
	var conflict *unique.ConflictError
	switch {
	case errors.As(err, &conflict):
		httpx.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{
			conflict.Field: "already exists",
		})
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
