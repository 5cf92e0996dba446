package doctorprofile

import "time"

const (
	maxSpecialtyLen   = 100
	maxDescriptionLen = 255
)

// DoctorProfile extends a doctor user with practice details. Each doctor has
// at most one profile.
type DoctorProfile struct {
	ID                int64     `json:"id" db:"id"`
	DoctorID          int64     `json:"doctorId" db:"doctor_id"`
	Specialty         string    `json:"specialty" db:"specialty"`
	Description       string    `json:"description,omitempty" db:"description"`
	YearsOfExperience int       `json:"yearsOfExperience" db:"years_of_experience"`
	LicenseNumber     string    `json:"licenseNumber,omitempty" db:"license_number"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// UpdateInput carries a partial update. The doctor reference is fixed once
// the profile exists.
type UpdateInput struct {
	Specialty         *string `json:"specialty"`
	Description       *string `json:"description"`
	YearsOfExperience *int    `json:"yearsOfExperience"`
	LicenseNumber     *string `json:"licenseNumber"`
}

type Filter struct {
	Specialty string
	DoctorID  *int64
}
