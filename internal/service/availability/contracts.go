package availability

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AgencyRepository каталог агентств
type AgencyRepository interface {
	GetAll(ctx context.Context) ([]*domain.Agency, error)
}

// ParametersRepository параметризация агентств
type ParametersRepository interface {
	GetAll(ctx context.Context) ([]*domain.AgencyParameters, error)
	GetByAgencyID(ctx context.Context, agencyID string) (*domain.AgencyParameters, error)
}

// AppointmentRepository журнал записей
type AppointmentRepository interface {
	GetByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
