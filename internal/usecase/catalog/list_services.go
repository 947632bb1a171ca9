package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Cri010101/toelettatura-system/internal/cache"
	domain "github.com/Cri010101/toelettatura-system/internal/domain/appointment"
	"github.com/Cri010101/toelettatura-system/internal/models"
)

type servicesCache interface {
	GetActiveServices(ctx context.Context) ([]models.Service, error)
	SetActiveServices(ctx context.Context, services []models.Service) error
}

type ListServices struct {
	repo  domain.CatalogRepository
	cache servicesCache
}

// NewListServices accepts a nil cache; the store is then read every time.
func NewListServices(repo domain.CatalogRepository, c servicesCache) *ListServices {
	return &ListServices{repo: repo, cache: c}
}

// Execute returns the active catalog ordered by name. Cache failures are
// logged and never reach the caller.
func (uc *ListServices) Execute(ctx context.Context) ([]models.Service, error) {
	if uc.cache != nil {
		services, err := uc.cache.GetActiveServices(ctx)
		if err == nil {
			return nonNil(services), nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn().Err(err).Msg("catalog cache read failed")
		}
	}

	services, err := uc.repo.ListActiveServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active services: %w", err)
	}
	services = nonNil(services)

	if uc.cache != nil {
		if err := uc.cache.SetActiveServices(ctx, services); err != nil {
			log.Warn().Err(err).Msg("catalog cache write failed")
		}
	}

	return services, nil
}

func nonNil(s []models.Service) []models.Service {
	if s == nil {
		return []models.Service{}
	}
	return s
}
