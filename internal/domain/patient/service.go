package patient

import (
	"context"
	"errors"

	"github.com/clinicmanager/clinicmanager/internal/platform/errs"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

// Add creates a patient after checking that the identification is unused.
// The lookup-then-insert order matches the conflict message clients expect;
// the unique index backs it up under concurrency.
func (s *Service) Add(ctx context.Context, p *Patient) error {
	if p.FullName == "" || p.Identification == "" {
		return errs.Invalidf("fullName and identification are required")
	}

	if _, err := s.patients.GetByIdentification(ctx, p.Identification); err == nil {
		return errs.Conflictf("a patient with identification %s already exists", p.Identification)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return err
	}

	return s.patients.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) GetByIdentification(ctx context.Context, identification string) (*Patient, error) {
	return s.patients.GetByIdentification(ctx, identification)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, f, limit, offset)
}

// Update applies a patch over an existing patient.
func (s *Service) Update(ctx context.Context, id int64, patch UpdateInput) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.FullName != nil {
		p.FullName = *patch.FullName
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.DateOfBirth != nil {
		p.DateOfBirth = *patch.DateOfBirth
	}

	if p.FullName == "" {
		return nil, errs.Invalidf("fullName is required")
	}

	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a patient. Admin only, enforced at the route.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.patients.GetByID(ctx, id); err != nil {
		return err
	}
	return s.patients.Delete(ctx, id)
}
