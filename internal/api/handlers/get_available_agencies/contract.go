package get_available_agencies

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type Scheduler interface {
	AgenciesAvailableOn(ctx context.Context, date time.Time) ([]*domain.Agency, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
