package appointment

import (
	"context"

	"github.com/clinicmanager/clinicmanager/internal/domain/patient"
	"github.com/clinicmanager/clinicmanager/internal/domain/user"
	"github.com/clinicmanager/clinicmanager/internal/platform/errs"
)

// PatientDirectory is the slice of the patient domain the scheduler needs.
type PatientDirectory interface {
	Get(ctx context.Context, id int64) (*patient.Patient, error)
}

// UserDirectory is the slice of the user domain the scheduler needs.
type UserDirectory interface {
	Get(ctx context.Context, id int64) (*user.User, error)
}

// TxRunner runs a function inside a storage transaction.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	appointments Repository
	patients     PatientDirectory
	users        UserDirectory
	tx           TxRunner
}

func NewService(appointments Repository, patients PatientDirectory, users UserDirectory, tx TxRunner) *Service {
	return &Service{appointments: appointments, patients: patients, users: users, tx: tx}
}

func (s *Service) Get(ctx context.Context, id int64) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) Query(ctx context.Context, f Filter, limit, offset int) ([]*Appointment, int, error) {
	if f.Sort != "" && !validSorts[f.Sort] {
		return nil, 0, errs.Invalidf("sort must be one of dateAsc, dateDesc, createdAtAsc, createdAtDesc")
	}
	return s.appointments.List(ctx, f, limit, offset)
}

// ListAll returns every appointment matching the filter without paging.
func (s *Service) ListAll(ctx context.Context, f Filter) ([]*Appointment, error) {
	if f.Sort != "" && !validSorts[f.Sort] {
		return nil, errs.Invalidf("sort must be one of dateAsc, dateDesc, createdAtAsc, createdAtDesc")
	}
	return s.appointments.ListAll(ctx, f)
}

// Add books an appointment. The patient and doctor references are validated
// inside the same transaction as the insert, the booker is stamped as
// CreatedByID, and the status defaults to Pending.
func (s *Service) Add(ctx context.Context, requesterID int64, a *Appointment) error {
	if a.PatientID == 0 || a.DoctorID == 0 {
		return errs.Invalidf("patientId and doctorId are required")
	}
	if a.Date.IsZero() {
		return errs.Invalidf("date is required")
	}
	if len(a.Reason) > maxReasonLen {
		return errs.Invalidf("reason must be at most %d characters", maxReasonLen)
	}
	if a.Status == "" {
		a.Status = StatusPending
	} else if !validStatuses[a.Status] {
		return errs.Invalidf("status must be Pending, Confirmed, Completed or Cancelled")
	}

	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.patients.Get(ctx, a.PatientID); err != nil {
			return err
		}
		if err := s.checkDoctor(ctx, a.DoctorID); err != nil {
			return err
		}
		a.CreatedByID = requesterID
		return s.appointments.Create(ctx, a)
	})
}

// Update patches an existing appointment. Patient and doctor references are
// re-validated only when the patch changes them. The requester is stamped as
// LastModifiedByID.
func (s *Service) Update(ctx context.Context, requesterID int64, id int64, patch UpdateInput) (*Appointment, error) {
	if patch.Reason != nil && len(*patch.Reason) > maxReasonLen {
		return nil, errs.Invalidf("reason must be at most %d characters", maxReasonLen)
	}
	if patch.Status != nil && !validStatuses[*patch.Status] {
		return nil, errs.Invalidf("status must be Pending, Confirmed, Completed or Cancelled")
	}

	var updated *Appointment
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		a, err := s.appointments.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.PatientID != nil && *patch.PatientID != a.PatientID {
			if _, err := s.patients.Get(ctx, *patch.PatientID); err != nil {
				return err
			}
			a.PatientID = *patch.PatientID
		}
		if patch.DoctorID != nil && *patch.DoctorID != a.DoctorID {
			if err := s.checkDoctor(ctx, *patch.DoctorID); err != nil {
				return err
			}
			a.DoctorID = *patch.DoctorID
		}
		if patch.Date != nil {
			a.Date = *patch.Date
		}
		if patch.Reason != nil {
			a.Reason = *patch.Reason
		}
		if patch.Status != nil {
			a.Status = *patch.Status
		}

		a.LastModifiedByID = &requesterID
		if err := s.appointments.Update(ctx, a); err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.appointments.GetByID(ctx, id); err != nil {
		return err
	}
	return s.appointments.Delete(ctx, id)
}

// checkDoctor verifies the referenced user exists and actually is a doctor.
func (s *Service) checkDoctor(ctx context.Context, doctorID int64) error {
	doc, err := s.users.Get(ctx, doctorID)
	if err != nil {
		return err
	}
	if doc.Role != user.RoleDoctor {
		return errs.Invalidf("user %d is not a doctor", doctorID)
	}
	return nil
}
