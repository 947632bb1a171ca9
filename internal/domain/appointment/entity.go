package appointment

import (
	"encoding/json"
	"strings"
)

// ProposedChanges is the admin's counter-offer. It never overwrites the
// appointment's own date and time.
type ProposedChanges struct {
	Date  string `json:"date,omitempty"`
	Time  string `json:"time,omitempty"`
	Notes string `json:"notes,omitempty"`
}

func (p *ProposedChanges) Empty() bool {
	return p == nil ||
		(strings.TrimSpace(p.Date) == "" &&
			strings.TrimSpace(p.Time) == "" &&
			strings.TrimSpace(p.Notes) == "")
}

// Encode returns nil for an empty proposal so the column stays NULL.
func (p *ProposedChanges) Encode() ([]byte, error) {
	if p.Empty() {
		return nil, nil
	}
	return json.Marshal(p)
}

// Transition is a single status change as the admin submitted it.
type Transition struct {
	Status          Status
	RejectionReason *string
	ProposedChanges []byte
}

// NewTransition validates the status and normalises the optional
// attachments: a blank reason is stored as NULL.
func NewTransition(status string, reason *string, changes *ProposedChanges) (Transition, error) {
	st, err := ParseStatus(strings.TrimSpace(status))
	if err != nil {
		return Transition{}, err
	}

	if reason != nil && strings.TrimSpace(*reason) == "" {
		reason = nil
	}

	payload, err := changes.Encode()
	if err != nil {
		return Transition{}, err
	}

	return Transition{
		Status:          st,
		RejectionReason: reason,
		ProposedChanges: payload,
	}, nil
}
