package get_available_slots

import "errors"

var (
	// ErrPastDate возвращается при запросе слотов на прошедшую дату
	ErrPastDate = errors.New("get_available_slots: date is in the past")

	// ErrConsultantNotFound возвращается, когда консультант не найден
	ErrConsultantNotFound = errors.New("get_available_slots: consultant not found")

	// ErrNotAConsultant возвращается, когда аккаунт не имеет роли консультанта
	ErrNotAConsultant = errors.New("get_available_slots: account is not a consultant")

	// ErrConsultantUnavailable возвращается, когда консультант деактивирован
	ErrConsultantUnavailable = errors.New("get_available_slots: consultant is unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
