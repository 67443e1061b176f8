package get_current_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/scheduling"
)

const (
	msgMissingRequesterID = "отсутствует ID заявителя"
	msgNotFound           = "у заявителя нет активной записи"
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

// Handle GET /api/v1/appointments/current
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetRequesterID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments/current - Missing requester ID")
		handlers.RespondUnauthorized(w, msgMissingRequesterID)
		return
	}

	appointment, err := h.scheduler.CurrentAppointment(r.Context(), requesterID)
	if err != nil {
		if errors.Is(err, scheduling.ErrAppointmentNotFound) {
			h.logger.Info("GET /appointments/current - No active appointment: requester_id=%s", requesterID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /appointments/current - Failed to get appointment: requester_id=%s, error=%v", requesterID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(appointment))
}
