package parameters

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Store операции над параметризацией, общие для postgres, memory и кэширующей обёртки
type Store interface {
	GetAll(ctx context.Context) ([]*domain.AgencyParameters, error)
	GetByAgencyID(ctx context.Context, agencyID string) (*domain.AgencyParameters, error)
	Create(ctx context.Context, params *domain.AgencyParameters) (*domain.AgencyParameters, error)
	Update(ctx context.Context, params *domain.AgencyParameters) (*domain.AgencyParameters, error)
	Delete(ctx context.Context, agencyID string) error
}

// Cache кэш сериализованных значений
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
