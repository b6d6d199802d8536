package models

import "time"

// Incident represents a single reported incident from the upstream feed.
// Latitude/Longitude are pointers: an incident without a usable location
// is kept in storage but excluded from spatial binning.
type Incident struct {
	ID                  string     `json:"id" db:"id"`
	CaseNumber          string     `json:"case_number,omitempty" db:"case_number"`
	OccurredAt          time.Time  `json:"occurred_at" db:"occurred_at"`
	Category            string     `json:"category" db:"category"`
	Description         string     `json:"description,omitempty" db:"description"`
	LocationDescription string     `json:"location_description,omitempty" db:"location_description"`
	Arrest              bool       `json:"arrest" db:"arrest"`
	Domestic            bool       `json:"domestic" db:"domestic"`
	Latitude            *float64   `json:"latitude,omitempty" db:"latitude"`
	Longitude           *float64   `json:"longitude,omitempty" db:"longitude"`
	UpdatedOn           *time.Time `json:"updated_on,omitempty" db:"updated_on"`
}

// HasLocation reports whether the incident carries usable coordinates.
func (i *Incident) HasLocation() bool {
	return i.Latitude != nil && i.Longitude != nil
}
