package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// Service сервис бэк-офиса для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		timeProvider:    realTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// List получает записи по фильтру: агентство, период, статус.
// Без статуса возвращаются записи во всех статусах, включая отмененные
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := "List: fetching appointments"
	if req.AgencyID != nil {
		logMsg += fmt.Sprintf(", agency=%s", *req.AgencyID)
	}
	if req.DateFrom != nil {
		logMsg += fmt.Sprintf(", from=%s", req.DateFrom.Format(domain.DateFormat))
	}
	if req.DateTo != nil {
		logMsg += fmt.Sprintf(", to=%s", req.DateTo.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		s.logger.Warn("List: dateFrom is after dateTo")
		return nil, fmt.Errorf("%w: dateFrom must not be after dateTo", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus переводит запись по машине состояний:
// booked -> processed -> completed, booked -> canceled (с причиной).
// Отмена освобождает час и лимит агентства
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%s to status=%s", id, req.Status)

	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var reason *string
	if newStatus == domain.StatusCanceled {
		trimmed := strings.TrimSpace(ptr.Value(req.Reason))
		if trimmed == "" {
			s.logger.Warn("UpdateStatus: cancel without reason for appointment id=%s", id)
			return nil, ErrCancelReasonRequired
		}
		if len(trimmed) > domain.MaxCancelReasonLength {
			return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
		}
		reason = &trimmed
	}

	var updated *domain.Appointment

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointment, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("UpdateStatus: appointment id=%s not found", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - get appointment: %w", ErrInternal, err)
		}

		if !appointment.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for appointment id=%s",
				appointment.Status, newStatus, id)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, newStatus)
		}

		appointment.ApplyStatus(newStatus, reason, s.timeProvider.Now())

		if err := s.appointmentRepo.UpdateStatus(txCtx, appointment); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - update appointment: %w", ErrInternal, err)
		}

		updated = appointment
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrAppointmentNotFound) && !errors.Is(err, ErrInvalidTransition) && !errors.Is(err, ErrInternal) {
			return nil, fmt.Errorf("%w: UpdateStatus - transaction: %v", ErrInternal, err)
		}
		return nil, err
	}

	s.logger.Info("UpdateStatus: appointment id=%s is now %s", id, newStatus)
	return models.FromDomainAppointment(updated), nil
}

// Metrics считает показатели отслеживания записей по всему журналу
func (s *Service) Metrics(ctx context.Context) (*models.MetricsResponse, error) {
	s.logger.Info("Metrics: computing appointment metrics")

	appointments, err := s.appointmentRepo.GetByFilter(ctx, domain.AppointmentsFilter{})
	if err != nil {
		s.logger.Error("Metrics: repository error: %v", err)
		return nil, fmt.Errorf("%w: Metrics - repository error: %v", ErrInternal, err)
	}

	return ComputeMetrics(appointments, s.timeProvider.Now()), nil
}
