package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	parametersRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/parameters"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ParametersCreator сохраняет параметризацию агентства
type ParametersCreator interface {
	Create(ctx context.Context, params *domain.AgencyParameters) (*domain.AgencyParameters, error)
}

// SeedAgency агентство каталога вместе с параметризацией по умолчанию
type SeedAgency struct {
	Agency                domain.Agency
	MaxAppointmentsPerDay int
	AvailableHours        []types.TimeString
}

// DefaultSeed начальный каталог банка
var DefaultSeed = []SeedAgency{
	{
		Agency:                domain.Agency{ID: "agency-1", Name: "Agencia Principal Caracas", Address: "Av. Francisco de Miranda, Caracas", Region: "Distrito Capital", Position: 1},
		MaxAppointmentsPerDay: 5,
		AvailableHours:        []types.TimeString{"09:00", "10:00", "11:00", "14:00", "15:00"},
	},
	{
		Agency:                domain.Agency{ID: "agency-2", Name: "Agencia Valencia Centro", Address: "Av. Bolívar, Valencia", Region: "Carabobo", Position: 2},
		MaxAppointmentsPerDay: 3,
		AvailableHours:        []types.TimeString{"09:30", "10:30", "11:30"},
	},
	{
		Agency:                domain.Agency{ID: "agency-3", Name: "Agencia Maracaibo Norte", Address: "Av. 15 Delicias, Maracaibo", Region: "Zulia", Position: 3},
		MaxAppointmentsPerDay: 7,
		AvailableHours:        []types.TimeString{"08:00", "09:00", "10:00", "11:00", "13:00", "14:00", "15:00"},
	},
	{
		Agency:                domain.Agency{ID: "agency-4", Name: "Agencia Barquisimeto Este", Address: "Av. Lara, Barquisimeto", Region: "Lara", Position: 4},
		MaxAppointmentsPerDay: 4,
		AvailableHours:        []types.TimeString{"08:30", "09:30", "10:30", "11:30"},
	},
}

// Seed загружает каталог и параметризацию. Повторный запуск безопасен:
// агентства обновляются, существующая параметризация не трогается
func (s *Service) Seed(ctx context.Context, params ParametersCreator, seed []SeedAgency) error {
	for _, item := range seed {
		agency := item.Agency
		if err := s.agencyRepo.Upsert(ctx, &agency); err != nil {
			s.logger.Error("Seed: failed to upsert agency=%s: %v", agency.ID, err)
			return fmt.Errorf("%w: Seed - upsert agency %s: %v", ErrInternal, agency.ID, err)
		}

		p, err := domain.NewAgencyParameters(agency.ID, item.MaxAppointmentsPerDay, item.AvailableHours)
		if err != nil {
			return fmt.Errorf("%w: agency %s: %v", ErrInvalidInput, agency.ID, err)
		}

		if _, err := params.Create(ctx, p); err != nil {
			if errors.Is(err, parametersRepo.ErrParametersExists) {
				s.logger.Info("Seed: agency=%s already parameterized, skipping", agency.ID)
				continue
			}
			s.logger.Error("Seed: failed to create parameters for agency=%s: %v", agency.ID, err)
			return fmt.Errorf("%w: Seed - create parameters %s: %v", ErrInternal, agency.ID, err)
		}
	}

	s.logger.Info("Seed: loaded %d agencies", len(seed))
	return nil
}
