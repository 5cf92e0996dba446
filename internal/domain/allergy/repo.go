package allergy

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, a *Allergy) error
	GetByID(ctx context.Context, id int64) (*Allergy, error)
	Update(ctx context.Context, a *Allergy) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Allergy, int, error)
}
