package jets

import (
	"context"
	"fmt"

	"github.com/Domenick1991/jetcharter/internal/domain"
	"github.com/Domenick1991/jetcharter/internal/repository"
	"github.com/google/uuid"
)

type JetUseCase interface {
	List(ctx context.Context, filter domain.JetFilter) ([]domain.Jet, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Jet, error)
	Create(ctx context.Context, jet *domain.Jet) (*domain.Jet, error)
	Update(ctx context.Context, jet *domain.Jet) (*domain.Jet, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context, page, limit int) ([]domain.Jet, int64, error)
}

// Cache keeps the default active catalogue page warm.
type Cache interface {
	GetJets(ctx context.Context) ([]domain.Jet, error)
	SetJets(ctx context.Context, jets []domain.Jet) error
	InvalidateJets(ctx context.Context) error
}

type JetService struct {
	repo  repository.JetRepository
	cache Cache
}

func NewJetService(repo repository.JetRepository, cache Cache) *JetService {
	return &JetService{repo: repo, cache: cache}
}

// List serves the public catalogue. Only the unfiltered first page goes
// through the cache; filtered queries always hit the repository.
func (s *JetService) List(ctx context.Context, filter domain.JetFilter) ([]domain.Jet, int64, error) {
	cacheable := filter.Default() && filter.Page <= 1

	if cacheable && s.cache != nil {
		if cached, err := s.cache.GetJets(ctx); err == nil && cached != nil {
			return cached, int64(len(cached)), nil
		}
	}

	jets, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if cacheable && s.cache != nil {
		_ = s.cache.SetJets(ctx, jets)
	}
	return jets, total, nil
}

func (s *JetService) GetByID(ctx context.Context, id string) (*domain.Jet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *JetService) Create(ctx context.Context, jet *domain.Jet) (*domain.Jet, error) {
	if err := validateJet(jet); err != nil {
		return nil, err
	}

	jet.ID = uuid.NewString()
	if err := s.repo.Create(ctx, jet); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return jet, nil
}

func (s *JetService) Update(ctx context.Context, jet *domain.Jet) (*domain.Jet, error) {
	if err := validateJet(jet); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, jet); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return jet, nil
}

func (s *JetService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *JetService) ListAll(ctx context.Context, page, limit int) ([]domain.Jet, int64, error) {
	return s.repo.ListAll(ctx, page, limit)
}

func (s *JetService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateJets(ctx)
	}
}

func validateJet(jet *domain.Jet) error {
	switch {
	case jet.Name == "":
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	case !jet.Category.Valid():
		return fmt.Errorf("%w: invalid category", domain.ErrValidation)
	case jet.Seats < 1:
		return fmt.Errorf("%w: seats must be positive", domain.ErrValidation)
	case jet.RangeNM < 1:
		return fmt.Errorf("%w: range must be positive", domain.ErrValidation)
	case jet.SpeedKts < 1:
		return fmt.Errorf("%w: speed must be positive", domain.ErrValidation)
	case jet.HourlyRate < 0:
		return fmt.Errorf("%w: hourly rate must not be negative", domain.ErrValidation)
	}
	return nil
}

var _ JetUseCase = (*JetService)(nil)
