package catalog

import (
	"context"
	"errors"
	"fmt"

	agencyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/agency"
)

// Service каталог агентств
type Service struct {
	agencyRepo AgencyRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(agencyRepo AgencyRepository, logger Logger) *Service {
	return &Service{
		agencyRepo: agencyRepo,
		logger:     logger,
	}
}

// List возвращает все агентства в порядке каталога
func (s *Service) List(ctx context.Context) ([]AgencyResponse, error) {
	agencies, err := s.agencyRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return FromDomainAgencies(agencies), nil
}

// GetByID возвращает агентство по ID
func (s *Service) GetByID(ctx context.Context, id string) (*AgencyResponse, error) {
	agency, err := s.agencyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, agencyRepo.ErrAgencyNotFound) {
			s.logger.Warn("GetByID: agency=%s not found", id)
			return nil, ErrAgencyNotFound
		}
		s.logger.Error("GetByID: repository error for agency=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	resp := FromDomainAgency(agency)
	return &resp, nil
}
