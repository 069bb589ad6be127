package consultation

import "time"

// Status of a consultation request, as the admin dashboard tracks it.
//
// The set is open: rows written by older versions of the site may carry
// other values, and the admin API accepts any non-empty status string.
type Status string

const (
	Unread   Status = "unread"
	Read     Status = "read"
	Resolved Status = "resolved"
)

// Record is a stored consultation request.
type Record struct {
	Id int

	Name  string
	Email string

	// Phone is optional; nil when the submitting form did not collect one.
	Phone *string

	// LegalService is the normalized service category of the request.
	LegalService string

	// Message is the combined, labeled detail text assembled at intake.
	Message string

	// Notes is free text edited by the administrator.
	Notes string

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRecord is the payload to register a consultation request.
// Name and Email are required; everything else is optional.
type NewRecord struct {
	Name         string
	Email        string
	Phone        *string
	LegalService string
	Message      string
}

// Delta carries the admin-mutable fields of a Record.
// nil fields are left unchanged.
type Delta struct {
	Status *Status
	Notes  *string
}

func (r Record) Equal(o Record) bool {
	if (r.Phone == nil) != (o.Phone == nil) {
		return false
	}
	if r.Phone != nil && *r.Phone != *o.Phone {
		return false
	}
	return r.Id == o.Id &&
		r.Name == o.Name &&
		r.Email == o.Email &&
		r.LegalService == o.LegalService &&
		r.Message == o.Message &&
		r.Notes == o.Notes &&
		r.Status == o.Status &&
		r.CreatedAt.Equal(o.CreatedAt) &&
		r.UpdatedAt.Equal(o.UpdatedAt)
}
