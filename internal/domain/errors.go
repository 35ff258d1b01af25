package domain

import "errors"

var (
	// ErrInvalidStatus неизвестный статус бронирования
	ErrInvalidStatus = errors.New("domain: invalid booking status")

	// ErrInvalidTransition недопустимый переход статуса
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrInvalidRole неизвестная роль пользователя
	ErrInvalidRole = errors.New("domain: invalid role")

	// ErrInvalidCategory неизвестная категория услуги
	ErrInvalidCategory = errors.New("domain: invalid category")

	// ErrInvalidConflictMode неизвестный режим проверки конфликтов
	ErrInvalidConflictMode = errors.New("domain: invalid conflict mode")

	// ErrInvalidService некорректные данные услуги
	ErrInvalidService = errors.New("domain: invalid service")

	// ErrInvalidWorker некорректные данные мастера
	ErrInvalidWorker = errors.New("domain: invalid worker")
)
