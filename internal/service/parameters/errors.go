package parameters

import "errors"

var (
	// ErrParametersNotFound возвращается, когда у агентства нет параметризации
	ErrParametersNotFound = errors.New("agency parameters not found")

	// ErrParametersAlreadyExist возвращается при повторной параметризации агентства
	ErrParametersAlreadyExist = errors.New("agency parameters already exist")

	// ErrAgencyNotFound возвращается, когда агентства нет в каталоге
	ErrAgencyNotFound = errors.New("agency not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
