package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotOccupied возвращается, когда слот (агентство, дата, час) уже занят активной записью
	ErrSlotOccupied = errors.New("appointment.repository: slot occupied")

	// ErrRequesterHasBooked возвращается, когда у заявителя уже есть запись в статусе booked
	ErrRequesterHasBooked = errors.New("appointment.repository: requester already has a booked appointment")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
