package manage_parameters

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/parameters/models"
)

type ParametersService interface {
	List(ctx context.Context) (*models.ParametersListResponse, error)
	Create(ctx context.Context, req *models.CreateParametersRequest) (*models.ParametersResponse, error)
	Update(ctx context.Context, agencyID string, req *models.UpdateParametersRequest) (*models.ParametersResponse, error)
	Delete(ctx context.Context, agencyID string) error
}

type Validator interface {
	Struct(s interface{}) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
