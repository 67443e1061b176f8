package parameters

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	agencyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/agency"
	parametersRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/parameters"
	"github.com/m04kA/SMC-AppointmentService/internal/service/parameters/models"
)

// Service сервис администрирования параметризации агентств
type Service struct {
	parametersRepo ParametersRepository
	agencyRepo     AgencyRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса параметризации
func NewService(
	parametersRepo ParametersRepository,
	agencyRepo AgencyRepository,
	logger Logger,
) *Service {
	return &Service{
		parametersRepo: parametersRepo,
		agencyRepo:     agencyRepo,
		logger:         logger,
	}
}

// List возвращает параметризацию всех агентств в порядке каталога
func (s *Service) List(ctx context.Context) (*models.ParametersListResponse, error) {
	s.logger.Info("List: fetching agency parameters")

	list, err := s.parametersRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainParametersList(list), nil
}

// Get возвращает параметризацию агентства
func (s *Service) Get(ctx context.Context, agencyID string) (*models.ParametersResponse, error) {
	s.logger.Info("Get: fetching parameters for agency=%s", agencyID)

	params, err := s.parametersRepo.GetByAgencyID(ctx, agencyID)
	if err != nil {
		if errors.Is(err, parametersRepo.ErrParametersNotFound) {
			s.logger.Warn("Get: agency=%s has no parameters", agencyID)
			return nil, ErrParametersNotFound
		}
		s.logger.Error("Get: repository error for agency=%s: %v", agencyID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainParameters(params), nil
}

// Create параметризует агентство из каталога.
// Без лимита и часов используются значения по умолчанию
func (s *Service) Create(ctx context.Context, req *models.CreateParametersRequest) (*models.ParametersResponse, error) {
	s.logger.Info("Create: creating parameters for agency=%s", req.AgencyID)

	// 1. Значения по умолчанию
	maxPerDay := domain.DefaultMaxAppointmentsPerDay
	if req.MaxAppointmentsPerDay != nil {
		maxPerDay = *req.MaxAppointmentsPerDay
	}
	hours := domain.DefaultAvailableHours
	if req.AvailableHours != nil {
		hours = models.ToTimeStrings(req.AvailableHours)
	}

	// 2. Валидация инвариантов
	params, err := domain.NewAgencyParameters(req.AgencyID, maxPerDay, hours)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Агентство должно быть в каталоге
	if err := s.ensureAgencyExists(ctx, req.AgencyID); err != nil {
		return nil, err
	}

	// 4. Сохраняем
	created, err := s.parametersRepo.Create(ctx, params)
	if err != nil {
		switch {
		case errors.Is(err, parametersRepo.ErrParametersExists):
			s.logger.Warn("Create: parameters for agency=%s already exist", req.AgencyID)
			return nil, ErrParametersAlreadyExist
		case errors.Is(err, parametersRepo.ErrUnknownAgency):
			s.logger.Warn("Create: agency=%s disappeared from catalog", req.AgencyID)
			return nil, ErrAgencyNotFound
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: agency=%s parameterized, max=%d, hours=%d",
		created.AgencyID, created.MaxAppointmentsPerDay, len(created.AvailableHours))
	return models.FromDomainParameters(created), nil
}

// Update меняет лимит и/или часы агентства.
// Уже созданные записи не пересматриваются
func (s *Service) Update(ctx context.Context, agencyID string, req *models.UpdateParametersRequest) (*models.ParametersResponse, error) {
	s.logger.Info("Update: updating parameters for agency=%s", agencyID)

	if req.MaxAppointmentsPerDay == nil && req.AvailableHours == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	current, err := s.parametersRepo.GetByAgencyID(ctx, agencyID)
	if err != nil {
		if errors.Is(err, parametersRepo.ErrParametersNotFound) {
			s.logger.Warn("Update: agency=%s has no parameters", agencyID)
			return nil, ErrParametersNotFound
		}
		s.logger.Error("Update: repository error for agency=%s: %v", agencyID, err)
		return nil, fmt.Errorf("%w: Update - get parameters: %v", ErrInternal, err)
	}

	maxPerDay := current.MaxAppointmentsPerDay
	if req.MaxAppointmentsPerDay != nil {
		maxPerDay = *req.MaxAppointmentsPerDay
	}
	hours := current.AvailableHours
	if req.AvailableHours != nil {
		hours = models.ToTimeStrings(req.AvailableHours)
	}

	params, err := domain.NewAgencyParameters(agencyID, maxPerDay, hours)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.parametersRepo.Update(ctx, params)
	if err != nil {
		if errors.Is(err, parametersRepo.ErrParametersNotFound) {
			return nil, ErrParametersNotFound
		}
		s.logger.Error("Update: repository error for agency=%s: %v", agencyID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: agency=%s updated, max=%d, hours=%d",
		agencyID, updated.MaxAppointmentsPerDay, len(updated.AvailableHours))
	return models.FromDomainParameters(updated), nil
}

// Delete снимает параметризацию: агентство перестает предлагаться для записи
func (s *Service) Delete(ctx context.Context, agencyID string) error {
	s.logger.Info("Delete: removing parameters for agency=%s", agencyID)

	if err := s.parametersRepo.Delete(ctx, agencyID); err != nil {
		if errors.Is(err, parametersRepo.ErrParametersNotFound) {
			s.logger.Warn("Delete: agency=%s has no parameters", agencyID)
			return ErrParametersNotFound
		}
		s.logger.Error("Delete: repository error for agency=%s: %v", agencyID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) ensureAgencyExists(ctx context.Context, agencyID string) error {
	if _, err := s.agencyRepo.GetByID(ctx, agencyID); err != nil {
		if errors.Is(err, agencyRepo.ErrAgencyNotFound) {
			s.logger.Warn("agency=%s not found in catalog", agencyID)
			return ErrAgencyNotFound
		}
		s.logger.Error("failed to get agency=%s: %v", agencyID, err)
		return fmt.Errorf("%w: failed to get agency: %v", ErrInternal, err)
	}
	return nil
}
