package allergy

import (
	"context"

	"github.com/clinicmanager/clinicmanager/internal/domain/user"
	"github.com/clinicmanager/clinicmanager/internal/platform/errs"
)

type Service struct {
	allergies Repository
}

func NewService(allergies Repository) *Service {
	return &Service{allergies: allergies}
}

func (s *Service) Get(ctx context.Context, id int64) (*Allergy, error) {
	return s.allergies.GetByID(ctx, id)
}

func (s *Service) Query(ctx context.Context, f Filter, limit, offset int) ([]*Allergy, int, error) {
	return s.allergies.List(ctx, f, limit, offset)
}

// Add creates a catalog entry. Admins and doctors maintain the catalog.
func (s *Service) Add(ctx context.Context, requesterRole string, a *Allergy) error {
	if !canEdit(requesterRole) {
		return errs.Forbiddenf("role %s cannot manage allergies", requesterRole)
	}
	if err := validate(a.Name, a.Description); err != nil {
		return err
	}
	return s.allergies.Create(ctx, a)
}

func (s *Service) Update(ctx context.Context, requesterRole string, id int64, patch UpdateInput) (*Allergy, error) {
	if !canEdit(requesterRole) {
		return nil, errs.Forbiddenf("role %s cannot manage allergies", requesterRole)
	}

	a, err := s.allergies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if err := validate(a.Name, a.Description); err != nil {
		return nil, err
	}

	if err := s.allergies.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes a catalog entry. Deletion is admin only since linked
// patient records hang off it.
func (s *Service) Delete(ctx context.Context, requesterRole string, id int64) error {
	if requesterRole != user.RoleAdmin {
		return errs.Forbiddenf("only admins can delete allergies")
	}
	if _, err := s.allergies.GetByID(ctx, id); err != nil {
		return err
	}
	return s.allergies.Delete(ctx, id)
}

func canEdit(role string) bool {
	return role == user.RoleAdmin || role == user.RoleDoctor
}

func validate(name, description string) error {
	if name == "" {
		return errs.Invalidf("name is required")
	}
	if len(name) > maxNameLen {
		return errs.Invalidf("name must be at most %d characters", maxNameLen)
	}
	if len(description) > maxDescriptionLen {
		return errs.Invalidf("description must be at most %d characters", maxDescriptionLen)
	}
	return nil
}
