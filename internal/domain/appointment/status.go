package appointment

import "github.com/Cri010101/toelettatura-system/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusModified  Status = "modified"
)

var statuses = map[Status]struct{}{
	StatusPending:   {},
	StatusConfirmed: {},
	StatusRejected:  {},
	StatusModified:  {},
}

// ===============================
// Validations
// ===============================

// ParseStatus accepts only the review vocabulary. Any status may move to any
// other one; the admin decides the order.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if _, ok := statuses[s]; !ok {
		return "", httperr.BadRequest("Stato non valido")
	}
	return s, nil
}

// InitialStatus is the status every public submission starts in.
func InitialStatus() Status {
	return StatusPending
}
