package catalog

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AgencyRepository интерфейс каталога агентств
type AgencyRepository interface {
	GetAll(ctx context.Context) ([]*domain.Agency, error)
	GetByID(ctx context.Context, id string) (*domain.Agency, error)
	Upsert(ctx context.Context, agency *domain.Agency) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
