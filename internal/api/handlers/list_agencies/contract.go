package list_agencies

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
)

type CatalogService interface {
	List(ctx context.Context) ([]catalog.AgencyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
