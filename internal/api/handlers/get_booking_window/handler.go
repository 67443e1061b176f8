package get_booking_window

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingWindowResponse ближайшая дата, доступная для записи
type BookingWindowResponse struct {
	EarliestDate string `json:"earliestDate"`
}

type Handler struct {
	scheduler Scheduler
}

func NewHandler(scheduler Scheduler) *Handler {
	return &Handler{scheduler: scheduler}
}

// Handle GET /api/v1/booking-window
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, BookingWindowResponse{
		EarliestDate: h.scheduler.BookingWindow().Format(domain.DateFormat),
	})
}
