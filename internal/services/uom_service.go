package services

import (
	"context"
	"strings"

	"stockroom/internal/common"
	"stockroom/internal/events"
	"stockroom/internal/models"
	"stockroom/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UnitOfMeasureService interface {
	List(ctx context.Context) ([]*models.UnitOfMeasure, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.UnitOfMeasure, error)
	Default(ctx context.Context) (*models.UnitOfMeasure, error)
	SeedDefaults(ctx context.Context) (bool, error)
	Update(ctx context.Context, unit *models.UnitOfMeasure) error
}

type unitOfMeasureService struct {
	uomRepo   repositories.UnitOfMeasureRepository
	publisher events.Publisher
	logger    *zap.Logger
}

func NewUnitOfMeasureService(uomRepo repositories.UnitOfMeasureRepository, publisher events.Publisher, logger *zap.Logger) UnitOfMeasureService {
	return &unitOfMeasureService{
		uomRepo:   uomRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *unitOfMeasureService) List(ctx context.Context) ([]*models.UnitOfMeasure, error) {
	units, err := s.uomRepo.List(ctx)
	if err != nil {
		return nil, common.NewPersistenceError("list units", err)
	}
	return units, nil
}

func (s *unitOfMeasureService) GetByID(ctx context.Context, id uuid.UUID) (*models.UnitOfMeasure, error) {
	unit, err := s.uomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate("get unit", "unit of measure", id, err)
	}
	return unit, nil
}

// Default returns the first unit flagged as default in registry order.
func (s *unitOfMeasureService) Default(ctx context.Context) (*models.UnitOfMeasure, error) {
	units, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range units {
		if u.IsDefault {
			return u, nil
		}
	}
	return nil, common.NewNotFoundError("default unit of measure", "")
}

// SeedDefaults installs the standard catalog into an empty registry. It
// reports whether anything was inserted.
func (s *unitOfMeasureService) SeedDefaults(ctx context.Context) (bool, error) {
	n, err := s.uomRepo.SeedDefaults(ctx, models.StandardUnits())
	if err != nil {
		return false, common.NewPersistenceError("seed units", err)
	}
	if n > 0 {
		s.logger.Info("seeded units of measure", zap.Int("count", n))
	}
	return n > 0, nil
}

func (s *unitOfMeasureService) Update(ctx context.Context, unit *models.UnitOfMeasure) error {
	unit.Name = strings.TrimSpace(unit.Name)
	unit.Symbol = strings.TrimSpace(unit.Symbol)
	if unit.Name == "" {
		return common.NewValidationError("name", "unit name is required")
	}
	if unit.Symbol == "" {
		return common.NewValidationError("symbol", "unit symbol is required")
	}

	if err := s.uomRepo.Update(ctx, unit); err != nil {
		return translate("update unit", "unit of measure", unit.ID, err)
	}

	s.publisher.Publish(events.New(events.SettingsChanged, unit.ID))
	return nil
}
