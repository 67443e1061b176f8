package notifications

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Mailer отправляет одно письмо-подтверждение
type Mailer interface {
	SendConfirmation(ctx context.Context, n domain.Notification) error
}

// EventPublisher публикует событие о созданной записи
type EventPublisher interface {
	PublishBooked(ctx context.Context, appointment *domain.Appointment) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
