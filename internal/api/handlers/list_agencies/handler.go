package list_agencies

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/agencies
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	agencies, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /agencies - Failed to list agencies: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /agencies - Agencies retrieved: count=%d", len(agencies))
	handlers.RespondJSON(w, http.StatusOK, agencies)
}
