package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Facade точка входа анкеты в планировщик записи
type Facade struct {
	resolver        AvailabilityResolver
	booker          Booker
	completeness    CompletenessChecker
	appointmentRepo AppointmentRepository
	outcomes        OutcomeObserver
	timeProvider    TimeProvider
	logger          Logger
}

// NewFacade создает фасад планировщика
func NewFacade(
	resolver AvailabilityResolver,
	booker Booker,
	completeness CompletenessChecker,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *Facade {
	return &Facade{
		resolver:        resolver,
		booker:          booker,
		completeness:    completeness,
		appointmentRepo: appointmentRepo,
		timeProvider:    &book_appointment.RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (f *Facade) WithTimeProvider(tp TimeProvider) *Facade {
	f.timeProvider = tp
	return f
}

// WithOutcomeObserver включает учет отказа IncompleteApplication в метриках
func (f *Facade) WithOutcomeObserver(o OutcomeObserver) *Facade {
	f.outcomes = o
	return f
}

// AgenciesAvailableOn агентства с неисчерпанным лимитом на дату
func (f *Facade) AgenciesAvailableOn(ctx context.Context, date time.Time) ([]*domain.Agency, error) {
	return f.resolver.AgenciesAvailableOn(ctx, date)
}

// HoursAvailableAt свободные часы агентства на дату
func (f *Facade) HoursAvailableAt(ctx context.Context, agencyID string, date time.Time) ([]types.TimeString, error) {
	return f.resolver.HoursAvailableAt(ctx, agencyID, date)
}

// Book записывает заявителя, если его анкета заполнена полностью.
// Отказы нижнего уровня возвращаются без изменений
func (f *Facade) Book(ctx context.Context, req *book_appointment.Request) (*book_appointment.Response, error) {
	complete, err := f.completeness.IsApplicationComplete(ctx, req.RequesterID)
	if err != nil {
		f.logger.Error("Book: failed to check application of requester=%s: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: %v", ErrIntakeUnavailable, err)
	}
	if !complete {
		f.logger.Warn("Book: requester=%s has incomplete application", req.RequesterID)
		if f.outcomes != nil {
			f.outcomes.ObserveBooking(book_appointment.KindIncompleteApplication)
		}
		return nil, ErrIncompleteApplication
	}

	return f.booker.Execute(ctx, req)
}

// BookingWindow ближайшая дата, которую анкета предлагает для записи
func (f *Facade) BookingWindow() time.Time {
	return domain.NextBusinessDay(f.timeProvider.Now())
}

// CurrentAppointment запись заявителя в статусе booked
func (f *Facade) CurrentAppointment(ctx context.Context, requesterID string) (*domain.Appointment, error) {
	appointments, err := f.appointmentRepo.GetByFilter(ctx, domain.AppointmentsFilter{
		RequesterID: ptr.Ptr(requesterID),
		Status:      ptr.Ptr(domain.StatusBooked),
	})
	if err != nil {
		f.logger.Error("CurrentAppointment: failed to get appointments of requester=%s: %v", requesterID, err)
		return nil, fmt.Errorf("%w: CurrentAppointment - get appointments: %v", ErrInternal, err)
	}

	if len(appointments) == 0 {
		return nil, ErrAppointmentNotFound
	}

	return appointments[0], nil
}
