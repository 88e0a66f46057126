package pettypes

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-registry/internal/domain/unique"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet type not found")
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
	Name        string
	LimbsNumber int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (PetType, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.LimbsNumber < 0 {
		return PetType{}, ErrInvalidInput
	}

	if err := s.uniq.Validate(ctx, unique.KindPetTypes, []unique.Field{
		{Name: "name", Value: name},
	}, ""); err != nil {
		return PetType{}, err
	}

	now := s.now()
	t := PetType{
		ID:          uuid.NewString(),
		Name:        name,
		LimbsNumber: in.LimbsNumber,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return PetType{}, err
	}
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (PetType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]PetType, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	Name        string
	LimbsNumber *int
}

// Update es el PUT: name obligatorio, limbs_number conserva si no viene.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (PetType, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return PetType{}, ErrInvalidInput
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return PetType{}, err
	}

	if err := s.uniq.Validate(ctx, unique.KindPetTypes, []unique.Field{
		{Name: "name", Value: name},
	}, current.ID); err != nil {
		return PetType{}, err
	}

	current.Name = name
	if in.LimbsNumber != nil {
		if *in.LimbsNumber < 0 {
			return PetType{}, ErrInvalidInput
		}
		current.LimbsNumber = *in.LimbsNumber
	}
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return PetType{}, err
	}
	return current, nil
}

type PatchInput struct {
	Name        *string
	LimbsNumber *int
}

func (s *Service) Patch(ctx context.Context, id string, in PatchInput) (PetType, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return PetType{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return PetType{}, ErrInvalidInput
		}
		if err := s.uniq.Validate(ctx, unique.KindPetTypes, []unique.Field{
			{Name: "name", Value: name},
		}, current.ID); err != nil {
			return PetType{}, err
		}
		current.Name = name
	}
	if in.LimbsNumber != nil {
		if *in.LimbsNumber < 0 {
			return PetType{}, ErrInvalidInput
		}
		current.LimbsNumber = *in.LimbsNumber
	}
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return PetType{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
