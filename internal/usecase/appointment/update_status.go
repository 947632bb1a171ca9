package appointment

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/Cri010101/toelettatura-system/internal/domain/appointment"
	"github.com/Cri010101/toelettatura-system/internal/httperr"
	"github.com/Cri010101/toelettatura-system/internal/models"
	"github.com/Cri010101/toelettatura-system/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type UpdateStatusInput struct {
	ActorID         uint
	Status          string
	RejectionReason *string
	ProposedChanges *domain.ProposedChanges
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointmentStatus struct {
	repo   domain.Repository
	events dispatcher
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	events dispatcher,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:   repo,
		events: events,
	}
}

// Execute replaces status, rejection reason and proposed changes together.
// Omitted attachments are cleared, not kept.
func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	id uint,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	t, err := domain.NewTransition(in.Status, in.RejectionReason, in.ProposedChanges)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.UpdateAppointmentStatus(ctx, id, t)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFound(MsgAppointmentNotFound)
		}
		return nil, fmt.Errorf("update appointment %d status: %w", id, err)
	}

	if in.ActorID != 0 {
		uc.events.Dispatch(notify.Event{
			UserID:        in.ActorID,
			Title:         "Stato appuntamento aggiornato",
			Message:       fmt.Sprintf("Appuntamento #%d di %s (%s): %s", ap.ID, ap.ClientName, ap.PetName, ap.Status),
			Type:          notify.TypeAppointmentState,
			AppointmentID: &ap.ID,
		})
	}

	return ap, nil
}
