package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "booked"
	StatusProcessed AppointmentStatus = "processed"
	StatusCanceled  AppointmentStatus = "canceled"
	StatusCompleted AppointmentStatus = "completed"
)

// IsValid проверяет, что статус известен
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusBooked, StatusProcessed, StatusCanceled, StatusCompleted:
		return true
	}
	return false
}

// ApplicantKind тип заявителя
type ApplicantKind string

const (
	ApplicantNatural   ApplicantKind = "natural"
	ApplicantJuridical ApplicantKind = "juridical"
)

// IsValid проверяет, что тип заявителя известен
func (k ApplicantKind) IsValid() bool {
	return k == ApplicantNatural || k == ApplicantJuridical
}

// Appointment запись заявителя на прием в агентство
type Appointment struct {
	ID                string
	RequesterID       string
	ApplicantKind     ApplicantKind
	Date              time.Time // Только дата, время 00:00 UTC
	Hour              types.TimeString
	AgencyID          string
	ContactEmail      string
	NotificationEmail string // Адрес банка для уведомления
	Status            AppointmentStatus
	CancelReason      *string

	ProcessedAt *time.Time
	CanceledAt  *time.Time
	CompletedAt *time.Time

	CreatedAt time.Time
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCanceled
}

// IsBooked returns true if the appointment is waiting to be attended
func (a *Appointment) IsBooked() bool {
	return a.Status == StatusBooked
}

// CanTransitionTo проверяет переход статуса:
// booked -> processed -> completed, booked -> canceled
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case StatusBooked:
		return next == StatusProcessed || next == StatusCanceled
	case StatusProcessed:
		return next == StatusCompleted
	default:
		return false
	}
}

// ApplyStatus переводит запись в новый статус и проставляет отметку времени.
// Проверку допустимости перехода выполняет вызывающий код через CanTransitionTo
func (a *Appointment) ApplyStatus(next AppointmentStatus, reason *string, now time.Time) {
	a.Status = next
	switch next {
	case StatusProcessed:
		a.ProcessedAt = &now
	case StatusCompleted:
		a.CompletedAt = &now
	case StatusCanceled:
		a.CanceledAt = &now
		a.CancelReason = reason
	}
}

// AppointmentsFilter фильтр выборки записей
type AppointmentsFilter struct {
	AgencyID    *string            // Фильтр по агентству
	RequesterID *string            // Фильтр по заявителю
	DateFrom    *time.Time         // Начало периода (включительно)
	DateTo      *time.Time         // Конец периода (включительно)
	Status      *AppointmentStatus // Конкретный статус
	ActiveOnly  bool               // Только записи, занимающие слот
}

// IsSingleDay возвращает true, если фильтр ограничен одной датой
func (f AppointmentsFilter) IsSingleDay() bool {
	return f.DateFrom != nil && f.DateTo != nil && f.DateFrom.Equal(*f.DateTo)
}

// Matches проверяет запись на соответствие фильтру
func (f AppointmentsFilter) Matches(a *Appointment) bool {
	if f.AgencyID != nil && a.AgencyID != *f.AgencyID {
		return false
	}
	if f.RequesterID != nil && a.RequesterID != *f.RequesterID {
		return false
	}
	if f.DateFrom != nil && a.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && a.Date.After(*f.DateTo) {
		return false
	}
	if f.Status != nil {
		return a.Status == *f.Status
	}
	if f.ActiveOnly && !a.IsActive() {
		return false
	}
	return true
}
