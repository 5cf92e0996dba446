package doctorprofile

import (
	"context"

	"github.com/clinicmanager/clinicmanager/internal/domain/user"
	"github.com/clinicmanager/clinicmanager/internal/platform/errs"
)

// UserDirectory is the slice of the user domain the profile service needs.
type UserDirectory interface {
	Get(ctx context.Context, id int64) (*user.User, error)
}

type Service struct {
	profiles Repository
	users    UserDirectory
}

func NewService(profiles Repository, users UserDirectory) *Service {
	return &Service{profiles: profiles, users: users}
}

func (s *Service) Get(ctx context.Context, id int64) (*DoctorProfile, error) {
	return s.profiles.GetByID(ctx, id)
}

func (s *Service) GetByDoctor(ctx context.Context, doctorID int64) (*DoctorProfile, error) {
	return s.profiles.GetByDoctorID(ctx, doctorID)
}

func (s *Service) Query(ctx context.Context, f Filter, limit, offset int) ([]*DoctorProfile, int, error) {
	return s.profiles.List(ctx, f, limit, offset)
}

// Add creates a profile. Only admins manage profiles, and the target user
// must actually hold the doctor role.
func (s *Service) Add(ctx context.Context, requesterRole string, p *DoctorProfile) error {
	if requesterRole != user.RoleAdmin {
		return errs.Forbiddenf("only admins can manage doctor profiles")
	}
	if err := validate(p.Specialty, p.Description, p.YearsOfExperience); err != nil {
		return err
	}
	if p.DoctorID == 0 {
		return errs.Invalidf("doctorId is required")
	}

	target, err := s.users.Get(ctx, p.DoctorID)
	if err != nil {
		return err
	}
	if target.Role != user.RoleDoctor {
		return errs.Forbiddenf("user %d is not a doctor", p.DoctorID)
	}

	return s.profiles.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, requesterRole string, id int64, patch UpdateInput) (*DoctorProfile, error) {
	if requesterRole != user.RoleAdmin {
		return nil, errs.Forbiddenf("only admins can manage doctor profiles")
	}

	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Specialty != nil {
		p.Specialty = *patch.Specialty
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.YearsOfExperience != nil {
		p.YearsOfExperience = *patch.YearsOfExperience
	}
	if patch.LicenseNumber != nil {
		p.LicenseNumber = *patch.LicenseNumber
	}
	if err := validate(p.Specialty, p.Description, p.YearsOfExperience); err != nil {
		return nil, err
	}

	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, requesterRole string, id int64) error {
	if requesterRole != user.RoleAdmin {
		return errs.Forbiddenf("only admins can manage doctor profiles")
	}
	if _, err := s.profiles.GetByID(ctx, id); err != nil {
		return err
	}
	return s.profiles.Delete(ctx, id)
}

func validate(specialty, description string, years int) error {
	if specialty == "" {
		return errs.Invalidf("specialty is required")
	}
	if len(specialty) > maxSpecialtyLen {
		return errs.Invalidf("specialty must be at most %d characters", maxSpecialtyLen)
	}
	if len(description) > maxDescriptionLen {
		return errs.Invalidf("description must be at most %d characters", maxDescriptionLen)
	}
	if years < 0 {
		return errs.Invalidf("yearsOfExperience cannot be negative")
	}
	return nil
}
