package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("pet not found")
	ErrInvalidReference = errors.New("breed does not exist")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name    string
	BreedID string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	name := strings.TrimSpace(in.Name)
	breedID := strings.TrimSpace(in.BreedID)

	if strings.TrimSpace(ownerUserID) == "" || name == "" || breedID == "" {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:        uuid.NewString(),
		Name:      name,
		OwnerID:   strings.TrimSpace(ownerUserID),
		BreedID:   breedID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	Name    string
	BreedID *string
}

// Update es el PUT: name obligatorio, breed_id conserva si no viene.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Pet{}, ErrInvalidInput
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	current.Name = name
	if in.BreedID != nil {
		breedID := strings.TrimSpace(*in.BreedID)
		if breedID == "" {
			return Pet{}, ErrInvalidInput
		}
		current.BreedID = breedID
	}
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Pet{}, err
	}
	return current, nil
}

type PatchInput struct {
	Name    *string
	BreedID *string
}

func (s *Service) Patch(ctx context.Context, id string, in PatchInput) (Pet, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		current.Name = name
	}
	if in.BreedID != nil {
		breedID := strings.TrimSpace(*in.BreedID)
		if breedID == "" {
			return Pet{}, ErrInvalidInput
		}
		current.BreedID = breedID
	}
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Pet{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
