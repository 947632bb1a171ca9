package appointment

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/Cri010101/toelettatura-system/internal/domain/appointment"
	"github.com/Cri010101/toelettatura-system/internal/httperr"
	"github.com/Cri010101/toelettatura-system/internal/models"
)

const MsgAppointmentNotFound = "Appuntamento non trovato"

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, id uint) (*models.Appointment, error) {
	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFound(MsgAppointmentNotFound)
		}
		return nil, fmt.Errorf("get appointment %d: %w", id, err)
	}
	return ap, nil
}
