package appointment

import (
	"time"
)

// Appointment statuses form a flat set. Any authorized update may move an
// appointment between any two of them; there is no transition graph.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

const maxReasonLen = 300

// Appointment maps to the appointments table. CreatedByID records who booked
// it, LastModifiedByID who touched it last.
type Appointment struct {
	ID               int64     `db:"id" json:"id"`
	PatientID        int64     `db:"patient_id" json:"patientId"`
	DoctorID         int64     `db:"doctor_id" json:"doctorId"`
	CreatedByID      int64     `db:"created_by_id" json:"createdById"`
	LastModifiedByID *int64    `db:"last_modified_by_id" json:"lastModifiedById,omitempty"`
	Date             time.Time `db:"date" json:"date"`
	Reason           string    `db:"reason" json:"reason"`
	Status           string    `db:"status" json:"status"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

// UpdateInput is a patch applied over an existing appointment. Nil fields are
// left untouched. Changed patient or doctor references are re-validated.
type UpdateInput struct {
	PatientID *int64     `json:"patientId"`
	DoctorID  *int64     `json:"doctorId"`
	Date      *time.Time `json:"date"`
	Reason    *string    `json:"reason"`
	Status    *string    `json:"status"`
}

// Sort keys accepted by Query. The secondary key is always id so pages are
// deterministic when dates collide.
const (
	SortDateAsc       = "dateAsc"
	SortDateDesc      = "dateDesc"
	SortCreatedAtAsc  = "createdAtAsc"
	SortCreatedAtDesc = "createdAtDesc"
)

var validSorts = map[string]bool{
	SortDateAsc:       true,
	SortDateDesc:      true,
	SortCreatedAtAsc:  true,
	SortCreatedAtDesc: true,
}

// Filter narrows appointment queries.
type Filter struct {
	From      *time.Time
	To        *time.Time
	DoctorID  *int64
	PatientID *int64
	Status    string
	Sort      string
}
