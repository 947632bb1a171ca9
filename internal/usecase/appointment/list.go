package appointment

import (
	"context"
	"fmt"

	domain "github.com/Cri010101/toelettatura-system/internal/domain/appointment"
	"github.com/Cri010101/toelettatura-system/internal/dto"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute returns every appointment, newest first, with its service columns.
func (uc *ListAppointments) Execute(ctx context.Context) ([]dto.AppointmentWithService, error) {
	out, err := uc.repo.ListAppointmentsWithService(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	if out == nil {
		out = []dto.AppointmentWithService{}
	}
	return out, nil
}
