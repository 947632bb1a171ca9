package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/Cri010101/toelettatura-system/internal/models"
)

const (
	TypeInfo             = "info"
	TypeNewAppointment   = "nuovo_appuntamento"
	TypeAppointmentState = "stato_appuntamento"
)

type store interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
}

type adminLister interface {
	ListAdmins(ctx context.Context) ([]models.User, error)
}

// Recorder persists notification rows. Nothing delivers them yet.
type Recorder struct {
	store  store
	admins adminLister
}

func NewRecorder(s store, admins adminLister) *Recorder {
	return &Recorder{store: s, admins: admins}
}

// Record writes one row per recipient. An event without a UserID goes to
// every admin.
func (r *Recorder) Record(ctx context.Context, ev Event) error {
	typ := ev.Type
	if typ == "" {
		typ = TypeInfo
	}

	recipients := []uint{ev.UserID}
	if ev.UserID == 0 {
		admins, err := r.admins.ListAdmins(ctx)
		if err != nil {
			return fmt.Errorf("list admins: %w", err)
		}
		recipients = recipients[:0]
		for _, u := range admins {
			recipients = append(recipients, u.ID)
		}
	}

	var errs []error
	for _, uid := range recipients {
		n := models.Notification{
			UserID:        uid,
			Title:         ev.Title,
			Message:       ev.Message,
			Type:          typ,
			AppointmentID: ev.AppointmentID,
		}
		if err := r.store.CreateNotification(ctx, &n); err != nil {
			errs = append(errs, fmt.Errorf("user %d: %w", uid, err))
		}
	}
	return errors.Join(errs...)
}
