package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/clinicmanager/clinicmanager/internal/domain/appointment"
	"github.com/clinicmanager/clinicmanager/internal/domain/patient"
	"github.com/clinicmanager/clinicmanager/internal/domain/user"
	"github.com/clinicmanager/clinicmanager/internal/platform/errs"
)

const topSize = 5

// allPages fetches every row in one page when classifying patients.
const allPages = 1<<31 - 1

// AppointmentSource is the slice of the appointment domain the report needs.
type AppointmentSource interface {
	ListAll(ctx context.Context, f appointment.Filter) ([]*appointment.Appointment, error)
}

// PatientSource is the slice of the patient domain the report needs.
type PatientSource interface {
	Get(ctx context.Context, id int64) (*patient.Patient, error)
	List(ctx context.Context, f patient.Filter, limit, offset int) ([]*patient.Patient, int, error)
}

// UserSource is the slice of the user domain the report needs.
type UserSource interface {
	Get(ctx context.Context, id int64) (*user.User, error)
}

type Service struct {
	appointments AppointmentSource
	patients     PatientSource
	users        UserSource
}

func NewService(appointments AppointmentSource, patients PatientSource, users UserSource) *Service {
	return &Service{appointments: appointments, patients: patients, users: users}
}

// GenerateSummary aggregates clinic activity between start and end. Top
// rankings use a stable sort so ties keep first-appointment order, and the
// hour histogram is sorted by its zero-padded label string.
func (s *Service) GenerateSummary(ctx context.Context, start, end time.Time) (*Summary, error) {
	if start.IsZero() || end.IsZero() {
		return nil, errs.Invalidf("start and end are required")
	}
	if end.Before(start) {
		return nil, errs.Invalidf("end must not be before start")
	}

	appointments, err := s.appointments.ListAll(ctx, appointment.Filter{From: &start, To: &end})
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		StartDate:         start,
		EndDate:           end,
		TotalAppointments: len(appointments),
	}

	for _, a := range appointments {
		switch a.Status {
		case appointment.StatusCompleted:
			summary.CompletedAppointments++
		case appointment.StatusConfirmed:
			summary.ConfirmedAppointments++
		case appointment.StatusPending:
			summary.PendingAppointments++
		case appointment.StatusCancelled:
			summary.CancelledAppointments++
		}
	}

	patients, _, err := s.patients.List(ctx, patient.Filter{}, allPages, 0)
	if err != nil {
		return nil, err
	}
	for _, p := range patients {
		switch {
		case !p.CreatedAt.Before(start) && !p.CreatedAt.After(end):
			summary.NewPatients++
		case p.CreatedAt.Before(start):
			summary.ReturningPatients++
		}
	}

	if summary.TopDoctorsByCompletedAppointments, err = s.topDoctors(ctx, appointments); err != nil {
		return nil, err
	}
	if summary.TopAssistantsByScheduledAppointments, err = s.topAssistants(ctx, appointments); err != nil {
		return nil, err
	}
	if summary.MostFrequentPatients, err = s.frequentPatients(ctx, appointments); err != nil {
		return nil, err
	}
	summary.MostRequestedTimeSlots = timeSlots(appointments)

	return summary, nil
}

// tally counts occurrences per id while remembering first-seen order, so the
// stable sort below has a deterministic input.
type tally struct {
	order  []int64
	counts map[int64]int
}

func newTally() *tally {
	return &tally{counts: map[int64]int{}}
}

func (t *tally) add(id int64) {
	if _, seen := t.counts[id]; !seen {
		t.order = append(t.order, id)
	}
	t.counts[id]++
}

func (t *tally) top(n int) []int64 {
	ids := make([]int64, len(t.order))
	copy(ids, t.order)
	sort.SliceStable(ids, func(i, j int) bool {
		return t.counts[ids[i]] > t.counts[ids[j]]
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}

func (s *Service) topDoctors(ctx context.Context, appointments []*appointment.Appointment) ([]*user.User, error) {
	t := newTally()
	for _, a := range appointments {
		if a.Status == appointment.StatusCompleted {
			t.add(a.DoctorID)
		}
	}
	return s.resolveUsers(ctx, t.top(topSize))
}

func (s *Service) topAssistants(ctx context.Context, appointments []*appointment.Appointment) ([]*user.User, error) {
	creators := map[int64]*user.User{}
	t := newTally()
	for _, a := range appointments {
		creator, ok := creators[a.CreatedByID]
		if !ok {
			var err error
			creator, err = s.users.Get(ctx, a.CreatedByID)
			if err != nil {
				if errors.Is(err, errs.ErrNotFound) {
					creators[a.CreatedByID] = nil
					continue
				}
				return nil, err
			}
			creators[a.CreatedByID] = creator
		}
		if creator != nil && creator.Role == user.RoleAssistant {
			t.add(a.CreatedByID)
		}
	}
	return s.resolveUsers(ctx, t.top(topSize))
}

func (s *Service) frequentPatients(ctx context.Context, appointments []*appointment.Appointment) ([]*patient.Patient, error) {
	t := newTally()
	for _, a := range appointments {
		t.add(a.PatientID)
	}

	out := []*patient.Patient{}
	for _, id := range t.top(topSize) {
		p, err := s.patients.Get(ctx, id)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) resolveUsers(ctx context.Context, ids []int64) ([]*user.User, error) {
	out := []*user.User{}
	for _, id := range ids {
		u, err := s.users.Get(ctx, id)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// timeSlots buckets appointments by hour of day. The upper bound of the label
// is hour+1 without wrapping, so the last bucket reads "23:00 - 24:00", and
// the result is ordered by the label string.
func timeSlots(appointments []*appointment.Appointment) []TimeSlot {
	counts := map[int]int{}
	for _, a := range appointments {
		counts[a.Date.Hour()]++
	}

	out := make([]TimeSlot, 0, len(counts))
	for hour, count := range counts {
		out = append(out, TimeSlot{
			TimeRange:        fmt.Sprintf("%02d:00 - %02d:00", hour, hour+1),
			AppointmentCount: count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TimeRange < out[j].TimeRange
	})
	return out
}
