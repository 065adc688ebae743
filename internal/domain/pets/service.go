package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
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
	Name     string
	Breed    string
	Age      string
	Gender   string
	Location string
	Distance string
	Image    string
}

func (s *Service) Create(ctx context.Context, shelterID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(shelterID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Breed) == "" {
		return Pet{}, ErrInvalidInput
	}

	gender := Gender(strings.TrimSpace(in.Gender))
	if gender == "" {
		gender = GenderUnknown
	}
	switch gender {
	case GenderMale, GenderFemale, GenderUnknown:
	default:
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:        uuid.NewString(),
		ShelterID: shelterID,
		Name:      strings.TrimSpace(in.Name),
		Breed:     strings.TrimSpace(in.Breed),
		Age:       strings.TrimSpace(in.Age),
		Gender:    gender,
		Location:  strings.TrimSpace(in.Location),
		Distance:  strings.TrimSpace(in.Distance),
		Image:     strings.TrimSpace(in.Image),
		Status:    StatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string
	Breed    *string
	Age      *string
	Gender   *string
	Location *string
	Distance *string
	Image    *string
}

// Update aplica un PATCH de perfil. Solo el refugio dueño puede editar.
// Status y AdoptedByUserID no son editables por esta vía: pertenecen al
// ciclo de vida de adopción y solo los muta el módulo adoptions.
func (s *Service) Update(ctx context.Context, petID, shelterID string, in UpdateInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.ShelterID != shelterID {
		return Pet{}, ErrForbidden
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Breed != nil {
		if strings.TrimSpace(*in.Breed) == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		p.Age = strings.TrimSpace(*in.Age)
	}
	if in.Gender != nil {
		g := Gender(strings.TrimSpace(*in.Gender))
		switch g {
		case GenderMale, GenderFemale, GenderUnknown:
			p.Gender = g
		default:
			return Pet{}, ErrInvalidInput
		}
	}
	if in.Location != nil {
		p.Location = strings.TrimSpace(*in.Location)
	}
	if in.Distance != nil {
		p.Distance = strings.TrimSpace(*in.Distance)
	}
	if in.Image != nil {
		p.Image = strings.TrimSpace(*in.Image)
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, petID, shelterID string) error {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return err
	}
	if p.ShelterID != shelterID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, petID)
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAvailable(ctx context.Context) ([]Pet, error) {
	return s.repo.ListAvailable(ctx)
}

func (s *Service) ListByShelter(ctx context.Context, shelterID string) ([]Pet, error) {
	shelterID = strings.TrimSpace(shelterID)
	if shelterID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByShelter(ctx, shelterID)
}
