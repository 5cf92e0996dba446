package allergy

import "time"

const (
	maxNameLen        = 100
	maxDescriptionLen = 300
)

// Allergy is a catalog entry patients can be linked to.
type Allergy struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type UpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type Filter struct {
	Name string
}
