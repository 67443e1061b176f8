package catalog

import "errors"

var (
	// ErrAgencyNotFound возвращается, когда агентства нет в каталоге
	ErrAgencyNotFound = errors.New("agency not found")

	// ErrInvalidInput возвращается при некорректных данных агентства
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
