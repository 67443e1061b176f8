package catalog

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// AgencyResponse агентство в ответе API
type AgencyResponse struct {
	AgencyID string `json:"agencyId"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Region   string `json:"region,omitempty"`
}

// FromDomainAgency конвертирует domain модель в DTO
func FromDomainAgency(a *domain.Agency) AgencyResponse {
	return AgencyResponse{
		AgencyID: a.ID,
		Name:     a.Name,
		Address:  a.Address,
		Region:   a.Region,
	}
}

// FromDomainAgencies конвертирует список в DTO, сохраняя порядок
func FromDomainAgencies(agencies []*domain.Agency) []AgencyResponse {
	result := make([]AgencyResponse, 0, len(agencies))
	for _, a := range agencies {
		result = append(result, FromDomainAgency(a))
	}
	return result
}
