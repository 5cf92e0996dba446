package patientallergy

import "time"

const (
	SeverityMild     = "Mild"
	SeverityModerate = "Moderate"
	SeveritySevere   = "Severe"
)

var validSeverities = map[string]bool{
	SeverityMild:     true,
	SeverityModerate: true,
	SeveritySevere:   true,
}

// PatientAllergy links a patient to a catalog allergy. The pair is unique.
type PatientAllergy struct {
	ID          int64      `json:"id" db:"id"`
	PatientID   int64      `json:"patientId" db:"patient_id"`
	AllergyID   int64      `json:"allergyId" db:"allergy_id"`
	Severity    string     `json:"severity" db:"severity"`
	DiagnosedAt *time.Time `json:"diagnosedAt,omitempty" db:"diagnosed_at"`
	Notes       string     `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// UpdateInput carries a partial update. The patient and allergy references
// are fixed once the link exists.
type UpdateInput struct {
	Severity    *string    `json:"severity"`
	DiagnosedAt *time.Time `json:"diagnosedAt"`
	Notes       *string    `json:"notes"`
}

type Filter struct {
	PatientID *int64
	AllergyID *int64
	Severity  string
}
