package patientallergy

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, pa *PatientAllergy) error
	GetByID(ctx context.Context, id int64) (*PatientAllergy, error)
	Update(ctx context.Context, pa *PatientAllergy) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*PatientAllergy, int, error)
}
