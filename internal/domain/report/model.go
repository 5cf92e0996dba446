package report

import (
	"time"

	"github.com/clinicmanager/clinicmanager/internal/domain/patient"
	"github.com/clinicmanager/clinicmanager/internal/domain/user"
)

// TimeSlot is one hour-of-day bucket in the summary histogram.
type TimeSlot struct {
	TimeRange        string `json:"timeRange"`
	AppointmentCount int    `json:"appointmentCount"`
}

// Summary aggregates clinic activity over a date range.
type Summary struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	TotalAppointments     int `json:"totalAppointments"`
	CompletedAppointments int `json:"completedAppointments"`
	ConfirmedAppointments int `json:"confirmedAppointments"`
	PendingAppointments   int `json:"pendingAppointments"`
	CancelledAppointments int `json:"cancelledAppointments"`

	NewPatients       int `json:"newPatients"`
	ReturningPatients int `json:"returningPatients"`

	TopDoctorsByCompletedAppointments    []*user.User       `json:"topDoctorsByCompletedAppointments"`
	TopAssistantsByScheduledAppointments []*user.User       `json:"topAssistantsByScheduledAppointments"`
	MostFrequentPatients                 []*patient.Patient `json:"mostFrequentPatients"`
	MostRequestedTimeSlots               []TimeSlot         `json:"mostRequestedTimeSlots"`
}
