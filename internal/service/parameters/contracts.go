package parameters

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ParametersRepository интерфейс репозитория параметризации агентств
type ParametersRepository interface {
	GetAll(ctx context.Context) ([]*domain.AgencyParameters, error)
	GetByAgencyID(ctx context.Context, agencyID string) (*domain.AgencyParameters, error)
	Create(ctx context.Context, params *domain.AgencyParameters) (*domain.AgencyParameters, error)
	Update(ctx context.Context, params *domain.AgencyParameters) (*domain.AgencyParameters, error)
	Delete(ctx context.Context, agencyID string) error
}

// AgencyRepository интерфейс каталога агентств
type AgencyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Agency, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
