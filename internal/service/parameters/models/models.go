package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модели

// CreateParametersRequest запрос на параметризацию агентства.
// Незаданные поля получают значения по умолчанию
type CreateParametersRequest struct {
	AgencyID              string   `json:"agencyId"`
	MaxAppointmentsPerDay *int     `json:"maxAppointmentsPerDay,omitempty"`
	AvailableHours        []string `json:"availableHours,omitempty"`
}

// UpdateParametersRequest запрос на изменение параметризации
// Все поля опциональны - обновляются только переданные значения
type UpdateParametersRequest struct {
	MaxAppointmentsPerDay *int     `json:"maxAppointmentsPerDay,omitempty"`
	AvailableHours        []string `json:"availableHours,omitempty"`
}

// Response модели

// ParametersResponse ответ с параметризацией агентства
type ParametersResponse struct {
	AgencyID              string    `json:"agencyId"`
	MaxAppointmentsPerDay int       `json:"maxAppointmentsPerDay"`
	AvailableHours        []string  `json:"availableHours"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// ParametersListResponse ответ со списком параметризаций
type ParametersListResponse struct {
	Parameters []ParametersResponse `json:"parameters"`
}

// Методы конвертации

// ToTimeStrings конвертирует часы из запроса
func ToTimeStrings(hours []string) []types.TimeString {
	if hours == nil {
		return nil
	}
	result := make([]types.TimeString, len(hours))
	for i, h := range hours {
		result[i] = types.TimeString(h)
	}
	return result
}

// FromDomainParameters конвертирует domain модель в DTO
func FromDomainParameters(p *domain.AgencyParameters) *ParametersResponse {
	if p == nil {
		return nil
	}

	hours := make([]string, len(p.AvailableHours))
	for i, h := range p.AvailableHours {
		hours[i] = h.String()
	}

	return &ParametersResponse{
		AgencyID:              p.AgencyID,
		MaxAppointmentsPerDay: p.MaxAppointmentsPerDay,
		AvailableHours:        hours,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

// FromDomainParametersList конвертирует список domain моделей в DTO
func FromDomainParametersList(list []*domain.AgencyParameters) *ParametersListResponse {
	resp := &ParametersListResponse{
		Parameters: make([]ParametersResponse, 0, len(list)),
	}
	for _, p := range list {
		if r := FromDomainParameters(p); r != nil {
			resp.Parameters = append(resp.Parameters, *r)
		}
	}
	return resp
}
