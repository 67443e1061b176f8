package get_available_hours

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type Scheduler interface {
	HoursAvailableAt(ctx context.Context, agencyID string, date time.Time) ([]types.TimeString, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
