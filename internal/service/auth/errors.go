package auth

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrPasswordMismatch пароль и подтверждение не совпадают
	ErrPasswordMismatch = errors.New("password confirmation does not match")

	// ErrCancelled запрос отменен во время имитации задержки
	ErrCancelled = errors.New("login cancelled")
)
