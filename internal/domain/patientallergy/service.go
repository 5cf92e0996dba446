package patientallergy

import (
	"context"

	"github.com/clinicmanager/clinicmanager/internal/domain/allergy"
	"github.com/clinicmanager/clinicmanager/internal/domain/patient"
	"github.com/clinicmanager/clinicmanager/internal/domain/user"
	"github.com/clinicmanager/clinicmanager/internal/platform/errs"
)

// PatientDirectory is the slice of the patient domain the link service needs.
type PatientDirectory interface {
	Get(ctx context.Context, id int64) (*patient.Patient, error)
}

// AllergyCatalog is the slice of the allergy domain the link service needs.
type AllergyCatalog interface {
	Get(ctx context.Context, id int64) (*allergy.Allergy, error)
}

type Service struct {
	links     Repository
	patients  PatientDirectory
	allergies AllergyCatalog
}

func NewService(links Repository, patients PatientDirectory, allergies AllergyCatalog) *Service {
	return &Service{links: links, patients: patients, allergies: allergies}
}

func (s *Service) Get(ctx context.Context, id int64) (*PatientAllergy, error) {
	return s.links.GetByID(ctx, id)
}

func (s *Service) Query(ctx context.Context, f Filter, limit, offset int) ([]*PatientAllergy, int, error) {
	if f.Severity != "" && !validSeverities[f.Severity] {
		return nil, 0, errs.Invalidf("severity must be Mild, Moderate or Severe")
	}
	return s.links.List(ctx, f, limit, offset)
}

// Add links a patient to an allergy. Admins and doctors manage links. Both
// ends of the link must exist, and severity defaults to Mild.
func (s *Service) Add(ctx context.Context, requesterRole string, pa *PatientAllergy) error {
	if !canManage(requesterRole) {
		return errs.Forbiddenf("role %s cannot manage patient allergies", requesterRole)
	}
	if pa.PatientID == 0 || pa.AllergyID == 0 {
		return errs.Invalidf("patientId and allergyId are required")
	}
	if pa.Severity == "" {
		pa.Severity = SeverityMild
	} else if !validSeverities[pa.Severity] {
		return errs.Invalidf("severity must be Mild, Moderate or Severe")
	}

	if _, err := s.patients.Get(ctx, pa.PatientID); err != nil {
		return err
	}
	if _, err := s.allergies.Get(ctx, pa.AllergyID); err != nil {
		return err
	}

	return s.links.Create(ctx, pa)
}

func (s *Service) Update(ctx context.Context, requesterRole string, id int64, patch UpdateInput) (*PatientAllergy, error) {
	if !canManage(requesterRole) {
		return nil, errs.Forbiddenf("role %s cannot manage patient allergies", requesterRole)
	}
	if patch.Severity != nil && !validSeverities[*patch.Severity] {
		return nil, errs.Invalidf("severity must be Mild, Moderate or Severe")
	}

	pa, err := s.links.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Severity != nil {
		pa.Severity = *patch.Severity
	}
	if patch.DiagnosedAt != nil {
		pa.DiagnosedAt = patch.DiagnosedAt
	}
	if patch.Notes != nil {
		pa.Notes = *patch.Notes
	}

	if err := s.links.Update(ctx, pa); err != nil {
		return nil, err
	}
	return pa, nil
}

func (s *Service) Delete(ctx context.Context, requesterRole string, id int64) error {
	if !canManage(requesterRole) {
		return errs.Forbiddenf("role %s cannot manage patient allergies", requesterRole)
	}
	if _, err := s.links.GetByID(ctx, id); err != nil {
		return err
	}
	return s.links.Delete(ctx, id)
}

func canManage(role string) bool {
	return role == user.RoleAdmin || role == user.RoleDoctor
}
