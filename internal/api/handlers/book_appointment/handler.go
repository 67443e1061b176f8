package book_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/scheduling"
	"github.com/m04kA/SMC-AppointmentService/internal/validation"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgValidationFailed      = "запрос не прошел проверку"
	msgMissingRequesterID    = "отсутствует ID заявителя"
	msgRequesterMismatch     = "ID заявителя в теле не совпадает с заголовком"
	msgAlreadyBooked         = "у заявителя уже есть активная запись"
	msgInvalidDate           = "на выбранную дату запись невозможна"
	msgNotBusinessDay        = "запись возможна только в рабочие дни, с понедельника по пятницу"
	msgBeforeBookingWindow   = "дата раньше ближайшего рабочего дня, доступного для записи"
	msgAgencyNotBookable     = "агентство не принимает записи"
	msgAgencyFullyBooked     = "в агентстве нет свободных мест на выбранную дату"
	msgSlotTaken             = "выбранный час недоступен"
	msgIncompleteApplication = "анкета заявителя заполнена не полностью"
	msgIntakeUnavailable     = "сервис анкет недоступен, повторите попытку позже"
)

type Handler struct {
	booker    Booker
	validator Validator
	logger    Logger
}

func NewHandler(booker Booker, validator Validator, logger Logger) *Handler {
	return &Handler{
		booker:    booker,
		validator: validator,
		logger:    logger,
	}
}

// Handle POST /api/v1/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetRequesterID(r.Context())
	if !ok {
		h.logger.Warn("POST /book - Missing requester ID")
		handlers.RespondUnauthorized(w, msgMissingRequesterID)
		return
	}

	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.logger.Warn("POST /book - Validation failed: requester_id=%s, error=%v", requesterID, err)
		handlers.RespondValidationError(w, msgValidationFailed, validation.Details(err))
		return
	}

	// Заявитель может записывать только себя
	if req.RequesterID != requesterID {
		h.logger.Warn("POST /book - Requester mismatch: header=%s, body=%s", requesterID, req.RequesterID)
		handlers.RespondForbidden(w, msgRequesterMismatch)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /book - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.booker.Book(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrIncompleteApplication):
			h.logger.Warn("POST /book - Incomplete application: requester_id=%s", requesterID)
			handlers.RespondErrorKind(w, http.StatusUnprocessableEntity, bookAppointment.KindIncompleteApplication, msgIncompleteApplication)

		case errors.Is(err, bookAppointment.ErrAlreadyBooked):
			h.logger.Warn("POST /book - Already booked: requester_id=%s", requesterID)
			handlers.RespondErrorKind(w, http.StatusConflict, bookAppointment.KindAlreadyBooked, msgAlreadyBooked)

		case errors.Is(err, bookAppointment.ErrInvalidDate):
			h.logger.Warn("POST /book - Invalid date: requester_id=%s, date=%s: %v", requesterID, req.Date, err)
			handlers.RespondErrorKind(w, http.StatusBadRequest, bookAppointment.KindInvalidDate, invalidDateMessage(err))

		case errors.Is(err, bookAppointment.ErrAgencyNotBookable):
			h.logger.Warn("POST /book - Agency not bookable: agency_id=%s", req.AgencyID)
			handlers.RespondErrorKind(w, http.StatusUnprocessableEntity, bookAppointment.KindAgencyNotBookable, msgAgencyNotBookable)

		case errors.Is(err, bookAppointment.ErrAgencyFullyBooked):
			h.logger.Warn("POST /book - Agency fully booked: agency_id=%s, date=%s", req.AgencyID, req.Date)
			handlers.RespondErrorKind(w, http.StatusConflict, bookAppointment.KindAgencyFullyBooked, msgAgencyFullyBooked)

		case errors.Is(err, bookAppointment.ErrSlotTaken):
			h.logger.Warn("POST /book - Slot taken: agency_id=%s, date=%s, hour=%s", req.AgencyID, req.Date, req.Hour)
			handlers.RespondErrorKind(w, http.StatusConflict, bookAppointment.KindSlotTaken, msgSlotTaken)

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /book - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, scheduling.ErrIntakeUnavailable):
			h.logger.Error("POST /book - Intake service unavailable: requester_id=%s, error=%v", requesterID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgIntakeUnavailable)

		default:
			h.logger.Error("POST /book - Failed to book appointment: requester_id=%s, agency_id=%s, error=%v",
				requesterID, req.AgencyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /book - Appointment booked: appointment_id=%s, requester_id=%s, agency_id=%s",
		result.Appointment.ID, requesterID, req.AgencyID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// invalidDateMessage различает выходной день и дату вне окна записи
func invalidDateMessage(err error) string {
	switch {
	case errors.Is(err, bookAppointment.ErrNotBusinessDay):
		return msgNotBusinessDay
	case errors.Is(err, bookAppointment.ErrBeforeBookingWindow):
		return msgBeforeBookingWindow
	default:
		return msgInvalidDate
	}
}
