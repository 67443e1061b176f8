package intakeservice

import "errors"

var (
	// ErrApplicationNotFound возвращается, когда у заявителя нет анкеты
	ErrApplicationNotFound = errors.New("intakeservice: application not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("intakeservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("intakeservice client: invalid response")
)
