package profileservice

import "errors"

var (
	// ErrProfileNotFound возвращается, когда у консультанта нет профиля.
	// Отсутствие профиля — не ошибка для сборки представления,
	// вызывающая сторона просто опускает поля профиля.
	ErrProfileNotFound = errors.New("consultant profile not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("profileservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("profileservice client: invalid response")
)
