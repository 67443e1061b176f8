package scheduling

import "errors"

var (
	// ErrIncompleteApplication возвращается, когда анкета заявителя заполнена не полностью
	ErrIncompleteApplication = errors.New("scheduling: application is not complete")

	// ErrAppointmentNotFound возвращается, когда у заявителя нет записи в статусе booked
	ErrAppointmentNotFound = errors.New("scheduling: appointment not found")

	// ErrIntakeUnavailable возвращается, когда не удалось узнать прогресс анкеты
	ErrIntakeUnavailable = errors.New("scheduling: intake service unavailable")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("scheduling: internal error")
)
