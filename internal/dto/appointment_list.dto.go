package dto

import "github.com/Cri010101/toelettatura-system/internal/models"

// AppointmentWithService is one row of the admin list: the appointment plus
// the columns of its service. The service fields are null when the
// reference no longer resolves.
type AppointmentWithService struct {
	models.Appointment

	ServiceName     *string  `json:"service_name"`
	ServiceDuration *int     `json:"duration"`
	ServicePrice    *float64 `json:"price"`
}

func NewAppointmentWithService(ap models.Appointment) AppointmentWithService {
	out := AppointmentWithService{Appointment: ap}
	if s := ap.Service; s != nil {
		out.ServiceName = &s.Name
		out.ServiceDuration = &s.Duration
		out.ServicePrice = &s.Price
	}
	return out
}
