package appointment

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id int64) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Appointment, int, error)
	// ListAll returns every appointment matching the filter without paging.
	// Used by report aggregation, which needs the full range.
	ListAll(ctx context.Context, f Filter) ([]*Appointment, error)
}
