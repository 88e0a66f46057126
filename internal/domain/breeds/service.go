package breeds

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-registry/internal/domain/unique"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("breed not found")
	ErrInvalidReference = errors.New("pet type does not exist")
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
	Name      string
	Color     string
	PetTypeID string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Breed, error) {
	name := strings.TrimSpace(in.Name)
	color := strings.TrimSpace(in.Color)
	petTypeID := strings.TrimSpace(in.PetTypeID)

	if name == "" || color == "" || petTypeID == "" {
		return Breed{}, ErrInvalidInput
	}

	if err := s.uniq.Validate(ctx, unique.KindBreeds, []unique.Field{
		{Name: "name", Value: name},
	}, ""); err != nil {
		return Breed{}, err
	}

	now := s.now()
	b := Breed{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		PetTypeID: petTypeID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return Breed{}, err
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Breed, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Breed, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	Name      string
	Color     string
	PetTypeID *string
}

// Update es el PUT: name y color obligatorios, pet_type_id conserva si no viene.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Breed, error) {
	name := strings.TrimSpace(in.Name)
	color := strings.TrimSpace(in.Color)
	if name == "" || color == "" {
		return Breed{}, ErrInvalidInput
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Breed{}, err
	}

	if err := s.uniq.Validate(ctx, unique.KindBreeds, []unique.Field{
		{Name: "name", Value: name},
	}, current.ID); err != nil {
		return Breed{}, err
	}

	current.Name = name
	current.Color = color
	if in.PetTypeID != nil {
		petTypeID := strings.TrimSpace(*in.PetTypeID)
		if petTypeID == "" {
			return Breed{}, ErrInvalidInput
		}
		current.PetTypeID = petTypeID
	}
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Breed{}, err
	}
	return current, nil
}

type PatchInput struct {
	Name      *string
	Color     *string
	PetTypeID *string
}

func (s *Service) Patch(ctx context.Context, id string, in PatchInput) (Breed, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Breed{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Breed{}, ErrInvalidInput
		}
		if err := s.uniq.Validate(ctx, unique.KindBreeds, []unique.Field{
			{Name: "name", Value: name},
		}, current.ID); err != nil {
			return Breed{}, err
		}
		current.Name = name
	}
	if in.Color != nil {
		color := strings.TrimSpace(*in.Color)
		if color == "" {
			return Breed{}, ErrInvalidInput
		}
		current.Color = color
	}
	if in.PetTypeID != nil {
		petTypeID := strings.TrimSpace(*in.PetTypeID)
		if petTypeID == "" {
			return Breed{}, ErrInvalidInput
		}
		current.PetTypeID = petTypeID
	}
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Breed{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
