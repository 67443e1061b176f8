package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Значения по умолчанию для новой параметризации агентства
const (
	DefaultMaxAppointmentsPerDay = 5
)

// DefaultAvailableHours часы приема для нового агентства
var DefaultAvailableHours = []types.TimeString{"09:00", "10:00", "11:00", "14:00", "15:00"}

// Business validation constants
const (
	MinAppointmentsPerDay = 1
	MaxAppointmentsPerDay = 100
	MaxCancelReasonLength = 500
)

// ActiveStatuses статусы, занимающие слот и лимит агентства
var ActiveStatuses = []AppointmentStatus{
	StatusBooked,
	StatusProcessed,
	StatusCompleted,
}

// InactiveStatuses статусы, освобождающие слот
var InactiveStatuses = []AppointmentStatus{
	StatusCanceled,
}
