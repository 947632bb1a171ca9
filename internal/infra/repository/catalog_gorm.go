package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/Cri010101/toelettatura-system/internal/domain/appointment"
	"github.com/Cri010101/toelettatura-system/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) ListActiveServices(ctx context.Context) ([]models.Service, error) {
	services := []models.Service{}
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

var _ domain.CatalogRepository = (*CatalogGormRepository)(nil)
