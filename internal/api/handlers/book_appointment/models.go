package book_appointment

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentModels "github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	RequesterID   string `json:"requesterId" validate:"required,max=64"`
	ApplicantKind string `json:"applicantKind" validate:"required,oneof=natural juridical"`
	Date          string `json:"date" validate:"required,date"`  // "2025-06-20"
	Hour          string `json:"hour" validate:"required,clock"` // "09:30"
	AgencyID      string `json:"agencyId" validate:"required,max=64"`
	ContactEmail  string `json:"contactEmail" validate:"required,email"`
	ClientName    string `json:"clientName,omitempty" validate:"omitempty,max=200"`
}

// NotificationResponse описание отправляемого письма
type NotificationResponse struct {
	Kind      string `json:"kind"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
}

// BookAppointmentResponse HTTP response model
type BookAppointmentResponse struct {
	Success       bool                                   `json:"success"`
	Appointment   *appointmentModels.AppointmentResponse `json:"appointment"`
	PdfURL        string                                 `json:"pdfUrl"`
	Notifications []NotificationResponse                 `json:"notifications"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookAppointmentRequest) ToUseCaseRequest() (*bookAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	hour, err := types.NewTimeStringFromString(r.Hour)
	if err != nil {
		return nil, err
	}

	return &bookAppointment.Request{
		RequesterID:   strings.TrimSpace(r.RequesterID),
		ApplicantKind: domain.ApplicantKind(r.ApplicantKind),
		Date:          date,
		Hour:          hour,
		AgencyID:      strings.TrimSpace(r.AgencyID),
		ContactEmail:  strings.TrimSpace(r.ContactEmail),
		ClientName:    strings.TrimSpace(r.ClientName),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *BookAppointmentResponse {
	notifications := make([]NotificationResponse, 0, len(resp.Notifications))
	for _, n := range resp.Notifications {
		notifications = append(notifications, NotificationResponse{
			Kind:      string(n.Kind),
			Recipient: n.Recipient,
			Subject:   n.Subject,
		})
	}

	return &BookAppointmentResponse{
		Success:       true,
		Appointment:   appointmentModels.FromDomainAppointment(resp.Appointment),
		PdfURL:        resp.PdfURL,
		Notifications: notifications,
	}
}
