package parameters

import "errors"

var (
	// ErrParametersNotFound возвращается, когда у агентства нет параметризации
	ErrParametersNotFound = errors.New("parameters.repository: agency parameters not found")

	// ErrParametersExists возвращается при повторной параметризации агентства
	ErrParametersExists = errors.New("parameters.repository: agency parameters already exist")

	// ErrUnknownAgency возвращается, когда агентства нет в каталоге
	ErrUnknownAgency = errors.New("parameters.repository: agency not in catalog")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("parameters.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("parameters.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("parameters.repository: failed to scan row")
)
