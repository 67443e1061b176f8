package book_appointment

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyBooked возвращается, когда у заявителя уже есть запись в статусе booked
	ErrAlreadyBooked = errors.New("book_appointment: requester already holds a booked appointment")

	// ErrInvalidDate возвращается, когда дата не рабочий день или раньше ближайшей доступной
	ErrInvalidDate = errors.New("book_appointment: invalid appointment date")

	// ErrNotBusinessDay дата приходится на субботу или воскресенье
	ErrNotBusinessDay = fmt.Errorf("%w: not a business day", ErrInvalidDate)

	// ErrBeforeBookingWindow дата раньше ближайшего рабочего дня (booking.enforce_window)
	ErrBeforeBookingWindow = fmt.Errorf("%w: before booking window", ErrInvalidDate)

	// ErrAgencyNotBookable возвращается, когда у агентства нет параметризации
	ErrAgencyNotBookable = errors.New("book_appointment: agency is not bookable")

	// ErrAgencyFullyBooked возвращается, когда дневной лимит агентства исчерпан
	ErrAgencyFullyBooked = errors.New("book_appointment: agency is fully booked on this date")

	// ErrSlotTaken возвращается, когда час не входит в расписание или уже занят
	ErrSlotTaken = errors.New("book_appointment: slot is taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)

// Виды отказа в записи
const (
	KindAlreadyBooked         = "AlreadyBooked"
	KindInvalidDate           = "InvalidDate"
	KindAgencyNotBookable     = "AgencyNotBookable"
	KindAgencyFullyBooked     = "AgencyFullyBooked"
	KindSlotTaken             = "SlotTaken"
	KindIncompleteApplication = "IncompleteApplication"
)

// Outcome метка результата попытки записи для метрик
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrAlreadyBooked):
		return KindAlreadyBooked
	case errors.Is(err, ErrInvalidDate):
		return KindInvalidDate
	case errors.Is(err, ErrAgencyNotBookable):
		return KindAgencyNotBookable
	case errors.Is(err, ErrAgencyFullyBooked):
		return KindAgencyFullyBooked
	case errors.Is(err, ErrSlotTaken):
		return KindSlotTaken
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal_error"
	}
}
