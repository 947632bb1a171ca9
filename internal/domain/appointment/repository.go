package appointment

import (
	"context"
	"errors"

	"github.com/Cri010101/toelettatura-system/internal/dto"
	"github.com/Cri010101/toelettatura-system/internal/models"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	// -------- Appointment (create / list) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsWithService(
		ctx context.Context,
	) ([]dto.AppointmentWithService, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointmentStatus(
		ctx context.Context,
		id uint,
		t Transition,
	) (*models.Appointment, error)
}

type CatalogRepository interface {
	ListActiveServices(ctx context.Context) ([]models.Service, error)
}

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListAdmins(ctx context.Context) ([]models.User, error)
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
}
