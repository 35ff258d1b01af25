package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrInvalidStatus возвращается при попытке сохранить неизвестный статус
	ErrInvalidStatus = errors.New("booking.repository: invalid booking status")

	// ErrSlotTaken возвращается, когда начальное бронирование занимает уже занятый слот
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrMigrate возвращается при ошибке создания схемы
	ErrMigrate = errors.New("booking.repository: migration failed")
)
