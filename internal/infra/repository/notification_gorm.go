package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/Cri010101/toelettatura-system/internal/domain/appointment"
	"github.com/Cri010101/toelettatura-system/internal/models"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Omit("User", "Appointment").Create(n).Error
}

var _ domain.NotificationRepository = (*NotificationGormRepository)(nil)
