package patient

import (
	"time"
)

// Patient maps to the patients table. Identification is the business key and
// is unique across the clinic.
type Patient struct {
	ID             int64     `db:"id" json:"id"`
	FullName       string    `db:"full_name" json:"fullName"`
	Identification string    `db:"identification" json:"identification"`
	Phone          string    `db:"phone" json:"phone"`
	Email          string    `db:"email" json:"email"`
	Address        string    `db:"address" json:"address"`
	DateOfBirth    time.Time `db:"date_of_birth" json:"dateOfBirth"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// UpdateInput is a patch applied over an existing patient. Nil fields are
// left untouched. Identification is immutable after create.
type UpdateInput struct {
	FullName    *string    `json:"fullName"`
	Phone       *string    `json:"phone"`
	Email       *string    `json:"email"`
	Address     *string    `json:"address"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
}

// Filter narrows patient list queries.
type Filter struct {
	Search      string
	DateOfBirth *time.Time
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
