package scheduling

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AvailabilityResolver отвечает на запросы доступности
type AvailabilityResolver interface {
	AgenciesAvailableOn(ctx context.Context, date time.Time) ([]*domain.Agency, error)
	HoursAvailableAt(ctx context.Context, agencyID string, date time.Time) ([]types.TimeString, error)
}

// Booker выполняет запись
type Booker interface {
	Execute(ctx context.Context, req *book_appointment.Request) (*book_appointment.Response, error)
}

// CompletenessChecker сообщает, заполнена ли анкета заявителя на 100%
type CompletenessChecker interface {
	IsApplicationComplete(ctx context.Context, requesterID string) (bool, error)
}

// AppointmentRepository журнал записей
type AppointmentRepository interface {
	GetByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// OutcomeObserver учитывает отказы, выданные до обращения к Booker
type OutcomeObserver interface {
	ObserveBooking(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
