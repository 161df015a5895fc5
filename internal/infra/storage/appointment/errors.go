package appointment

import "errors"

var (
	// ErrNotFound возвращается, когда запись не найдена
	ErrNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotUnavailable возвращается, когда условная вставка/перенос отклонены:
	// слот заблокирован или его вместимость исчерпана
	ErrSlotUnavailable = errors.New("appointment.repository: slot unavailable")

	// ErrDuplicate возвращается при повторной записи вендора в тот же слот
	ErrDuplicate = errors.New("appointment.repository: vendor already has an appointment in this slot")

	// ErrTrackingCodeTaken возвращается при конфликте tracking_code
	ErrTrackingCodeTaken = errors.New("appointment.repository: tracking code already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
