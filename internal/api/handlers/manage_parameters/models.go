package manage_parameters

import "github.com/m04kA/SMC-AppointmentService/internal/service/parameters/models"

// CreateParametersRequest HTTP request model
type CreateParametersRequest struct {
	AgencyID              string   `json:"agencyId" validate:"required,max=64"`
	MaxAppointmentsPerDay *int     `json:"maxAppointmentsPerDay,omitempty" validate:"omitempty,min=1"`
	AvailableHours        []string `json:"availableHours,omitempty" validate:"omitempty,min=1,dive,clock"`
}

// UpdateParametersRequest HTTP request model
type UpdateParametersRequest struct {
	MaxAppointmentsPerDay *int     `json:"maxAppointmentsPerDay,omitempty" validate:"omitempty,min=1"`
	AvailableHours        []string `json:"availableHours,omitempty" validate:"omitempty,min=1,dive,clock"`
}

func (r *CreateParametersRequest) ToServiceRequest() *models.CreateParametersRequest {
	return &models.CreateParametersRequest{
		AgencyID:              r.AgencyID,
		MaxAppointmentsPerDay: r.MaxAppointmentsPerDay,
		AvailableHours:        r.AvailableHours,
	}
}

func (r *UpdateParametersRequest) ToServiceRequest() *models.UpdateParametersRequest {
	return &models.UpdateParametersRequest{
		MaxAppointmentsPerDay: r.MaxAppointmentsPerDay,
		AvailableHours:        r.AvailableHours,
	}
}
