package doctorprofile

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, p *DoctorProfile) error
	GetByID(ctx context.Context, id int64) (*DoctorProfile, error)
	GetByDoctorID(ctx context.Context, doctorID int64) (*DoctorProfile, error)
	Update(ctx context.Context, p *DoctorProfile) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*DoctorProfile, int, error)
}
