package directory

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент с указанным DNI не найден
	ErrClientNotFound = errors.New("directory.repository: client not found")

	// ErrCompanyNotFound возвращается, когда компания с указанным CIF не найдена
	ErrCompanyNotFound = errors.New("directory.repository: company not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("directory.repository: service not found")

	// ErrInvalidSchedule возвращается при некорректном окне расписания в БД
	ErrInvalidSchedule = errors.New("directory.repository: invalid schedule row")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("directory.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("directory.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("directory.repository: failed to scan row")
)
