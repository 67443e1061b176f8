package get_available_hours

import (
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	msgMissingParams = "необходимо указать agencyId и date"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	scheduler Scheduler
	logger    Logger
}

func NewHandler(scheduler Scheduler, logger Logger) *Handler {
	return &Handler{
		scheduler: scheduler,
		logger:    logger,
	}
}

// Handle GET /api/v1/hours?agencyId=A&date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	agencyID := strings.TrimSpace(query.Get("agencyId"))
	dateStr := query.Get("date")

	if agencyID == "" || dateStr == "" {
		h.logger.Warn("GET /hours - Missing params: agency_id=%q, date=%q", agencyID, dateStr)
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /hours - Invalid date: %s", dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	hours, err := h.scheduler.HoursAvailableAt(r.Context(), agencyID, date)
	if err != nil {
		h.logger.Error("GET /hours - Failed to resolve hours: agency_id=%s, date=%s, error=%v", agencyID, dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	// Агентство без параметризации отдает пустой список
	resp := make([]string, 0, len(hours))
	for _, hour := range hours {
		resp = append(resp, hour.String())
	}

	h.logger.Info("GET /hours - Hours available: agency_id=%s, date=%s, count=%d", agencyID, dateStr, len(resp))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
