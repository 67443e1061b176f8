package events

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const EventTypeAppointmentBooked = "appointment.booked"

// AppointmentBooked событие о созданной записи
type AppointmentBooked struct {
	AppointmentID string    `json:"appointmentId"`
	RequesterID   string    `json:"requesterId"`
	ApplicantKind string    `json:"applicantKind"`
	AgencyID      string    `json:"agencyId"`
	Date          string    `json:"date"`
	Hour          string    `json:"hour"`
	ContactEmail  string    `json:"contactEmail"`
	BookedAt      time.Time `json:"bookedAt"`
}

// FromDomainAppointment собирает событие из записи
func FromDomainAppointment(a *domain.Appointment) AppointmentBooked {
	return AppointmentBooked{
		AppointmentID: a.ID,
		RequesterID:   a.RequesterID,
		ApplicantKind: string(a.ApplicantKind),
		AgencyID:      a.AgencyID,
		Date:          a.Date.Format(time.DateOnly),
		Hour:          a.Hour.String(),
		ContactEmail:  a.ContactEmail,
		BookedAt:      a.CreatedAt,
	}
}
