package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "github.com/Cri010101/toelettatura-system/internal/domain/appointment"
	"github.com/Cri010101/toelettatura-system/internal/dto"
	"github.com/Cri010101/toelettatura-system/internal/models"
)

type AppointmentGormRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db, now: time.Now}
}

// WithClock replaces the time source used for updated_at.
func (r *AppointmentGormRepository) WithClock(now func() time.Time) *AppointmentGormRepository {
	r.now = now
	return r
}

// --------------------------------------------------
// Appointment (create / list)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("Service").Create(ap).Error
}

func (r *AppointmentGormRepository) ListAppointmentsWithService(
	ctx context.Context,
) ([]dto.AppointmentWithService, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Order("created_at DESC").
		Order("id DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentWithService, 0, len(apps))
	for _, ap := range apps {
		out = append(out, dto.NewAppointmentWithService(ap))
	}
	return out, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ap, nil
}

// UpdateAppointmentStatus writes status, reason, proposal and updated_at in
// one UPDATE and reads the row back in the same transaction.
func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	id uint,
	t domain.Transition,
) (*models.Appointment, error) {

	var ap models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Appointment{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"status":           string(t.Status),
				"rejection_reason": t.RejectionReason,
				"proposed_changes": datatypes.JSON(t.ProposedChanges),
				"updated_at":       r.now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		return tx.First(&ap, id).Error
	})
	if err != nil {
		return nil, err
	}

	return &ap, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
