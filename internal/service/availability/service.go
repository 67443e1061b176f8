package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	parametersRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/parameters"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Service отвечает на вопросы: какие агентства свободны на дату и какие часы свободны в агентстве.
// Рабочий день здесь не проверяется: это запрос, а не проверка записи
type Service struct {
	agencyRepo      AgencyRepository
	parametersRepo  ParametersRepository
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	agencyRepo AgencyRepository,
	parametersRepo ParametersRepository,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *Service {
	return &Service{
		agencyRepo:      agencyRepo,
		parametersRepo:  parametersRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// AgenciesAvailableOn возвращает агентства с параметризацией, у которых на дату
// число активных записей меньше лимита. Порядок каталога. Пустой список не ошибка
func (s *Service) AgenciesAvailableOn(ctx context.Context, date time.Time) ([]*domain.Agency, error) {
	date = domain.DateOnly(date)
	s.logger.Info("AgenciesAvailableOn: date=%s", date.Format(domain.DateFormat))

	agencies, err := s.agencyRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("AgenciesAvailableOn: failed to get agencies: %v", err)
		return nil, fmt.Errorf("%w: AgenciesAvailableOn - get agencies: %v", ErrInternal, err)
	}

	allParams, err := s.parametersRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("AgenciesAvailableOn: failed to get parameters: %v", err)
		return nil, fmt.Errorf("%w: AgenciesAvailableOn - get parameters: %v", ErrInternal, err)
	}

	paramsByAgency := make(map[string]*domain.AgencyParameters, len(allParams))
	for _, p := range allParams {
		paramsByAgency[p.AgencyID] = p
	}

	appointments, err := s.appointmentRepo.GetByFilter(ctx, domain.AppointmentsFilter{
		DateFrom:   &date,
		DateTo:     &date,
		ActiveOnly: true,
	})
	if err != nil {
		s.logger.Error("AgenciesAvailableOn: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: AgenciesAvailableOn - get appointments: %v", ErrInternal, err)
	}
	byAgency := groupByAgency(appointments)

	available := make([]*domain.Agency, 0, len(agencies))
	for _, agency := range agencies {
		params, ok := paramsByAgency[agency.ID]
		if !ok {
			continue
		}
		if HasCapacity(params, byAgency[agency.ID]) {
			available = append(available, agency)
		}
	}

	s.logger.Info("AgenciesAvailableOn: date=%s, available=%d of %d parameterized",
		date.Format(domain.DateFormat), len(available), len(paramsByAgency))
	return available, nil
}

// HoursAvailableAt возвращает часы агентства, не занятые активными записями на дату.
// Лимит агентства здесь не проверяется. Агентство без параметризации дает пустой список
func (s *Service) HoursAvailableAt(ctx context.Context, agencyID string, date time.Time) ([]types.TimeString, error) {
	date = domain.DateOnly(date)
	s.logger.Info("HoursAvailableAt: agency=%s, date=%s", agencyID, date.Format(domain.DateFormat))

	params, err := s.parametersRepo.GetByAgencyID(ctx, agencyID)
	if err != nil {
		if errors.Is(err, parametersRepo.ErrParametersNotFound) {
			s.logger.Warn("HoursAvailableAt: agency=%s has no parameters", agencyID)
			return []types.TimeString{}, nil
		}
		s.logger.Error("HoursAvailableAt: failed to get parameters for agency=%s: %v", agencyID, err)
		return nil, fmt.Errorf("%w: HoursAvailableAt - get parameters: %v", ErrInternal, err)
	}

	appointments, err := s.appointmentRepo.GetByFilter(ctx, domain.AppointmentsFilter{
		AgencyID:   &agencyID,
		DateFrom:   &date,
		DateTo:     &date,
		ActiveOnly: true,
	})
	if err != nil {
		s.logger.Error("HoursAvailableAt: failed to get appointments for agency=%s: %v", agencyID, err)
		return nil, fmt.Errorf("%w: HoursAvailableAt - get appointments: %v", ErrInternal, err)
	}

	free := FreeHours(params, appointments)

	s.logger.Info("HoursAvailableAt: agency=%s, date=%s, free=%d of %d",
		agencyID, date.Format(domain.DateFormat), len(free), len(params.AvailableHours))
	return free, nil
}
