package list_appointments

import (
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// parseQuery собирает фильтр из query параметров agencyId, dateFrom, dateTo, status
func parseQuery(query url.Values) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{}

	if v := strings.TrimSpace(query.Get("agencyId")); v != "" {
		req.AgencyID = &v
	}
	if v := strings.TrimSpace(query.Get("status")); v != "" {
		req.Status = &v
	}

	if v := query.Get("dateFrom"); v != "" {
		date, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.DateFrom = &date
	}
	if v := query.Get("dateTo"); v != "" {
		date, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.DateTo = &date
	}

	return req, nil
}
