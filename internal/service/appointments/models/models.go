package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListAppointmentsRequest фильтр списка записей бэк-офиса
type ListAppointmentsRequest struct {
	AgencyID *string    `json:"agencyId,omitempty"`
	DateFrom *time.Time `json:"dateFrom,omitempty"`
	DateTo   *time.Time `json:"dateTo,omitempty"`
	Status   *string    `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		AgencyID: r.AgencyID,
		DateFrom: r.DateFrom,
		DateTo:   r.DateTo,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"` // Обязательна для canceled
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                string  `json:"id"`
	RequesterID       string  `json:"requesterId"`
	ApplicantKind     string  `json:"applicantKind"`
	Date              string  `json:"date"` // "2025-06-20"
	Hour              string  `json:"hour"` // "09:30"
	AgencyID          string  `json:"agencyId"`
	ContactEmail      string  `json:"contactEmail"`
	NotificationEmail string  `json:"notificationEmail"`
	Status            string  `json:"status"`
	CancelReason      *string `json:"cancelReason,omitempty"`

	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	CanceledAt  *time.Time `json:"canceledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// MetricsResponse показатели отслеживания записей
type MetricsResponse struct {
	Total     int `json:"total"`
	Booked    int `json:"booked"`
	Processed int `json:"processed"`
	Canceled  int `json:"canceled"`
	Completed int `json:"completed"`

	Today     int `json:"today"`     // По дате приема
	ThisWeek  int `json:"thisWeek"`  // Созданы за последние 7 дней
	ThisMonth int `json:"thisMonth"` // Созданы за последние 30 дней

	AverageAttentionMinutes float64        `json:"averageAttentionMinutes"`
	CompletionRate          float64        `json:"completionRate"` // Проценты
	CancelReasons           map[string]int `json:"cancelReasons"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:                a.ID,
		RequesterID:       a.RequesterID,
		ApplicantKind:     string(a.ApplicantKind),
		Date:              a.Date.Format(domain.DateFormat),
		Hour:              a.Hour.String(),
		AgencyID:          a.AgencyID,
		ContactEmail:      a.ContactEmail,
		NotificationEmail: a.NotificationEmail,
		Status:            string(a.Status),
		CancelReason:      a.CancelReason,
		ProcessedAt:       a.ProcessedAt,
		CanceledAt:        a.CanceledAt,
		CompletedAt:       a.CompletedAt,
		CreatedAt:         a.CreatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if r := FromDomainAppointment(a); r != nil {
			resp.Appointments = append(resp.Appointments, *r)
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
