package medicalrecord

import "time"

const (
	maxDiagnosisLen = 500
	maxTreatmentLen = 500
)

// MedicalRecord is a clinical note a doctor writes for a patient, optionally
// tied to the appointment it originated from.
type MedicalRecord struct {
	ID            int64     `json:"id" db:"id"`
	PatientID     int64     `json:"patientId" db:"patient_id"`
	DoctorID      int64     `json:"doctorId" db:"doctor_id"`
	AppointmentID *int64    `json:"appointmentId,omitempty" db:"appointment_id"`
	Diagnosis     string    `json:"diagnosis" db:"diagnosis"`
	Treatment     string    `json:"treatment,omitempty" db:"treatment"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// UpdateInput carries a partial update. Patient, doctor and appointment
// references are fixed once the record is written; only the clinical text
// can change.
type UpdateInput struct {
	Diagnosis *string `json:"diagnosis"`
	Treatment *string `json:"treatment"`
}

type Filter struct {
	PatientID *int64
	DoctorID  *int64
}
