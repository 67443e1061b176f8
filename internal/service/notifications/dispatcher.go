package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Dispatcher доставляет письма и публикует событие о записи.
// Пустой mailer или publisher отключает соответствующий канал
type Dispatcher struct {
	mailer    Mailer
	publisher EventPublisher
	logger    Logger
}

// NewDispatcher создает Dispatcher
func NewDispatcher(mailer Mailer, publisher EventPublisher, logger Logger) *Dispatcher {
	return &Dispatcher{
		mailer:    mailer,
		publisher: publisher,
		logger:    logger,
	}
}

// Dispatch отправляет все письма и событие. Ошибка одного канала не останавливает остальные
func (d *Dispatcher) Dispatch(ctx context.Context, appointment *domain.Appointment, notifications []domain.Notification) error {
	var errs []error

	// 1. Письма
	if d.mailer != nil {
		for _, n := range notifications {
			if err := d.mailer.SendConfirmation(ctx, n); err != nil {
				d.logger.Warn("Dispatch: %s email for appointment id=%s failed: %v", n.Kind, appointment.ID, err)
				errs = append(errs, err)
			}
		}
	}

	// 2. Событие
	if d.publisher != nil {
		if err := d.publisher.PublishBooked(ctx, appointment); err != nil {
			d.logger.Warn("Dispatch: event for appointment id=%s failed: %v", appointment.ID, err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, errors.Join(errs...))
	}
	return nil
}
