package appointment

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	domain "github.com/Cri010101/toelettatura-system/internal/domain/appointment"
	"github.com/Cri010101/toelettatura-system/internal/httperr"
	"github.com/Cri010101/toelettatura-system/internal/models"
	"github.com/Cri010101/toelettatura-system/internal/notify"
)

const MsgMissingFields = "Campi obbligatori mancanti"

type dispatcher interface {
	Dispatch(ev notify.Event)
}

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientName  string `validate:"required"`
	ClientPhone string
	ClientEmail string

	PetName  string `validate:"required"`
	PetBreed string

	ServiceID uint `validate:"required"`

	Date  string `validate:"required"`
	Time  string `validate:"required"`
	Notes string
}

func (in *CreateAppointmentInput) trim() {
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	in.ClientEmail = strings.TrimSpace(in.ClientEmail)
	in.PetName = strings.TrimSpace(in.PetName)
	in.PetBreed = strings.TrimSpace(in.PetBreed)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	validate *validator.Validate
	events   dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	validate *validator.Validate,
	events dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		validate: validate,
		events:   events,
	}
}

// Execute stores a public booking request as pending. The service reference
// is not checked: unknown or inactive services are accepted as sent.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	in.trim()
	if err := uc.validate.Struct(in); err != nil {
		return nil, httperr.BadRequest(MsgMissingFields)
	}

	ap := &models.Appointment{
		ClientName:      in.ClientName,
		ClientPhone:     in.ClientPhone,
		ClientEmail:     in.ClientEmail,
		PetName:         in.PetName,
		PetBreed:        in.PetBreed,
		ServiceID:       in.ServiceID,
		AppointmentDate: in.Date,
		AppointmentTime: in.Time,
		Notes:           in.Notes,
		Status:          string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	uc.events.Dispatch(notify.Event{
		Title:         "Nuova richiesta di appuntamento",
		Message:       fmt.Sprintf("%s ha richiesto un appuntamento per %s il %s alle %s", ap.ClientName, ap.PetName, ap.AppointmentDate, ap.AppointmentTime),
		Type:          notify.TypeNewAppointment,
		AppointmentID: &ap.ID,
	})

	return ap, nil
}
