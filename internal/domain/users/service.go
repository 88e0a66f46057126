package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-registry/internal/domain/unique"
	"pet-registry/internal/ports/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	repo Repository
	uniq *unique.Validator
	now  func() time.Time
}

func NewService(repo Repository, uniq *unique.Validator) *Service {
	return &Service{
		repo: repo,
		uniq: uniq,
		now:  time.Now,
	}
}

type CreateInput struct {
	Username    string
	Email       string
	Password    string
	PhoneNumber string
	Address     string
	Role        string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	role := strings.TrimSpace(in.Role)

	if username == "" || email == "" || in.Password == "" {
		return User{}, ErrInvalidInput
	}
	if role == "" {
		role = auth.RoleUser
	}
	if !auth.ValidRole(role) {
		return User{}, ErrInvalidInput
	}

	if err := s.uniq.Validate(ctx, unique.KindUsers, []unique.Field{
		{Name: "username", Value: username},
		{Name: "email", Value: email},
	}, ""); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		Address:      strings.TrimSpace(in.Address),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	Username string
	Email    string
	Password string

	// Opcionales: nil = conservar el valor actual.
	PhoneNumber *string
	Address     *string
	Role        *string
}

// Update es el PUT: username, email y password son obligatorios;
// los campos no enviados conservan su valor.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return User{}, ErrInvalidInput
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if err := s.uniq.Validate(ctx, unique.KindUsers, []unique.Field{
		{Name: "username", Value: username},
		{Name: "email", Value: email},
	}, current.ID); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	current.Username = username
	current.Email = email
	current.PasswordHash = string(hash)
	if in.PhoneNumber != nil {
		current.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.Address != nil {
		current.Address = strings.TrimSpace(*in.Address)
	}
	if in.Role != nil {
		role := strings.TrimSpace(*in.Role)
		if !auth.ValidRole(role) {
			return User{}, ErrInvalidInput
		}
		current.Role = role
	}
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return User{}, err
	}
	return current, nil
}

type PatchInput struct {
	Username    *string
	Email       *string
	Password    *string
	PhoneNumber *string
	Address     *string
	Role        *string
}

// Patch es el PATCH: solo toca los campos presentes.
func (s *Service) Patch(ctx context.Context, id string, in PatchInput) (User, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	fields := make([]unique.Field, 0, 2)
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return User{}, ErrInvalidInput
		}
		fields = append(fields, unique.Field{Name: "username", Value: username})
		current.Username = username
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return User{}, ErrInvalidInput
		}
		fields = append(fields, unique.Field{Name: "email", Value: email})
		current.Email = email
	}

	if len(fields) > 0 {
		if err := s.uniq.Validate(ctx, unique.KindUsers, fields, current.ID); err != nil {
			return User{}, err
		}
	}

	if in.Password != nil {
		if *in.Password == "" {
			return User{}, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, err
		}
		current.PasswordHash = string(hash)
	}
	if in.PhoneNumber != nil {
		current.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.Address != nil {
		current.Address = strings.TrimSpace(*in.Address)
	}
	if in.Role != nil {
		role := strings.TrimSpace(*in.Role)
		if !auth.ValidRole(role) {
			return User{}, ErrInvalidInput
		}
		current.Role = role
	}
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return User{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Authenticate valida credenciales para el login.
// Devuelve ErrInvalidCredentials tanto para user inexistente como para
// password incorrecto, sin distinguirlos.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}
