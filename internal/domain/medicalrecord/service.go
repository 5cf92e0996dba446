package medicalrecord

import (
	"context"

	"github.com/clinicmanager/clinicmanager/internal/domain/patient"
	"github.com/clinicmanager/clinicmanager/internal/domain/user"
	"github.com/clinicmanager/clinicmanager/internal/platform/errs"
)

// PatientDirectory is the slice of the patient domain the record service needs.
type PatientDirectory interface {
	Get(ctx context.Context, id int64) (*patient.Patient, error)
}

// UserDirectory is the slice of the user domain the record service needs.
type UserDirectory interface {
	Get(ctx context.Context, id int64) (*user.User, error)
}

type Service struct {
	records  Repository
	patients PatientDirectory
	users    UserDirectory
}

func NewService(records Repository, patients PatientDirectory, users UserDirectory) *Service {
	return &Service{records: records, patients: patients, users: users}
}

func (s *Service) Get(ctx context.Context, id int64) (*MedicalRecord, error) {
	return s.records.GetByID(ctx, id)
}

func (s *Service) Query(ctx context.Context, f Filter, limit, offset int) ([]*MedicalRecord, int, error) {
	return s.records.List(ctx, f, limit, offset)
}

// Add writes a new record. Assistants cannot write records at all. A doctor
// always authors under their own id, so the record's doctor reference is
// forced to the requester. Admins may author under any doctor, and the
// referenced user must actually hold the doctor role.
func (s *Service) Add(ctx context.Context, requesterID int64, requesterRole string, rec *MedicalRecord) error {
	switch requesterRole {
	case user.RoleAdmin:
	case user.RoleDoctor:
		rec.DoctorID = requesterID
	default:
		return errs.Forbiddenf("role %s cannot create medical records", requesterRole)
	}

	if rec.PatientID == 0 {
		return errs.Invalidf("patientId is required")
	}
	if rec.Diagnosis == "" {
		return errs.Invalidf("diagnosis is required")
	}
	if len(rec.Diagnosis) > maxDiagnosisLen {
		return errs.Invalidf("diagnosis must be at most %d characters", maxDiagnosisLen)
	}
	if len(rec.Treatment) > maxTreatmentLen {
		return errs.Invalidf("treatment must be at most %d characters", maxTreatmentLen)
	}

	if _, err := s.patients.Get(ctx, rec.PatientID); err != nil {
		return err
	}
	if rec.DoctorID == 0 {
		return errs.Invalidf("doctorId is required")
	}
	doc, err := s.users.Get(ctx, rec.DoctorID)
	if err != nil {
		return err
	}
	if doc.Role != user.RoleDoctor {
		return errs.Invalidf("user %d is not a doctor", rec.DoctorID)
	}

	return s.records.Create(ctx, rec)
}

// Update patches an existing record after an ownership check: a doctor may
// only touch records they authored, an admin may touch any, an assistant none.
func (s *Service) Update(ctx context.Context, requesterID int64, requesterRole string, id int64, patch UpdateInput) (*MedicalRecord, error) {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeMutation(requesterID, requesterRole, rec); err != nil {
		return nil, err
	}

	if patch.Diagnosis != nil {
		if *patch.Diagnosis == "" {
			return nil, errs.Invalidf("diagnosis is required")
		}
		if len(*patch.Diagnosis) > maxDiagnosisLen {
			return nil, errs.Invalidf("diagnosis must be at most %d characters", maxDiagnosisLen)
		}
		rec.Diagnosis = *patch.Diagnosis
	}
	if patch.Treatment != nil {
		if len(*patch.Treatment) > maxTreatmentLen {
			return nil, errs.Invalidf("treatment must be at most %d characters", maxTreatmentLen)
		}
		rec.Treatment = *patch.Treatment
	}

	if err := s.records.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, requesterID int64, requesterRole string, id int64) error {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeMutation(requesterID, requesterRole, rec); err != nil {
		return err
	}
	return s.records.Delete(ctx, id)
}

func (s *Service) authorizeMutation(requesterID int64, requesterRole string, rec *MedicalRecord) error {
	switch requesterRole {
	case user.RoleAdmin:
		return nil
	case user.RoleDoctor:
		if rec.DoctorID != requesterID {
			return errs.Forbiddenf("doctors can only modify their own medical records")
		}
		return nil
	default:
		return errs.Forbiddenf("role %s cannot modify medical records", requesterRole)
	}
}
