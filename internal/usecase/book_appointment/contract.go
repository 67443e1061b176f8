package book_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс журнала записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	GetByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// ParametersRepository интерфейс репозитория параметризации агентств
type ParametersRepository interface {
	GetByAgencyID(ctx context.Context, agencyID string) (*domain.AgencyParameters, error)
}

// AgencyRepository интерфейс каталога агентств
type AgencyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Agency, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// NotificationDispatcher отправляет письма-подтверждения после фиксации записи
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, appointment *domain.Appointment, notifications []domain.Notification) error
}

// PdfBuilder строит ссылку на PDF с подтверждением записи
type PdfBuilder interface {
	BuildPdfURL(appointmentID string) string
}

// OutcomeObserver учитывает результаты попыток записи
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
