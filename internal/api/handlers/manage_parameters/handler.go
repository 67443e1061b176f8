package manage_parameters

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/parameters"
	"github.com/m04kA/SMC-AppointmentService/internal/validation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "запрос не прошел проверку"
	msgNotFound           = "параметризация агентства не найдена"
	msgAlreadyExists      = "агентство уже параметризовано"
	msgAgencyNotFound     = "агентство отсутствует в каталоге"
)

// Handler администрирование параметризации агентств
type Handler struct {
	service   ParametersService
	validator Validator
	logger    Logger
}

func NewHandler(service ParametersService, validator Validator, logger Logger) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
		logger:    logger,
	}
}

// List GET /api/v1/admin/parameters
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/parameters - Failed to list parameters: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Create POST /api/v1/admin/parameters
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateParametersRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/parameters - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.logger.Warn("POST /admin/parameters - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgValidationFailed, validation.Details(err))
		return
	}

	created, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		h.respondServiceError(w, "POST /admin/parameters", req.AgencyID, err)
		return
	}

	h.logger.Info("POST /admin/parameters - Agency parameterized: agency_id=%s", created.AgencyID)
	handlers.RespondJSON(w, http.StatusCreated, created)
}

// Update PUT /api/v1/admin/parameters/{agencyId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	agencyID := mux.Vars(r)["agencyId"]

	var req UpdateParametersRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/parameters/{agencyId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.logger.Warn("PUT /admin/parameters/{agencyId} - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgValidationFailed, validation.Details(err))
		return
	}

	updated, err := h.service.Update(r.Context(), agencyID, req.ToServiceRequest())
	if err != nil {
		h.respondServiceError(w, "PUT /admin/parameters/{agencyId}", agencyID, err)
		return
	}

	h.logger.Info("PUT /admin/parameters/{agencyId} - Parameters updated: agency_id=%s", agencyID)
	handlers.RespondJSON(w, http.StatusOK, updated)
}

// Delete DELETE /api/v1/admin/parameters/{agencyId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	agencyID := mux.Vars(r)["agencyId"]

	if err := h.service.Delete(r.Context(), agencyID); err != nil {
		h.respondServiceError(w, "DELETE /admin/parameters/{agencyId}", agencyID, err)
		return
	}

	h.logger.Info("DELETE /admin/parameters/{agencyId} - Parameters removed: agency_id=%s", agencyID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route, agencyID string, err error) {
	switch {
	case errors.Is(err, parameters.ErrParametersNotFound):
		h.logger.Warn("%s - Parameters not found: agency_id=%s", route, agencyID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, parameters.ErrParametersAlreadyExist):
		h.logger.Warn("%s - Parameters already exist: agency_id=%s", route, agencyID)
		handlers.RespondConflict(w, msgAlreadyExists)

	case errors.Is(err, parameters.ErrAgencyNotFound):
		h.logger.Warn("%s - Agency not found: agency_id=%s", route, agencyID)
		handlers.RespondNotFound(w, msgAgencyNotFound)

	case errors.Is(err, parameters.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("%s - Service error: agency_id=%s, error=%v", route, agencyID, err)
		handlers.RespondInternalError(w)
	}
}
