package consultations

import "errors"

var (
	// ErrConsultationNotFound возвращается, когда консультация не найдена
	ErrConsultationNotFound = errors.New("consultation not found")

	// ErrUserNotFound возвращается, когда вызывающий аккаунт не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrNotAuthorizedToConfirm возвращается, когда подтвердить пытается
	// кто-либо кроме назначенного консультанта
	ErrNotAuthorizedToConfirm = errors.New("not authorized to confirm this consultation")

	// ErrNotAuthorizedToCancel возвращается, когда отменить пытается
	// кто-либо кроме клиента или назначенного консультанта
	ErrNotAuthorizedToCancel = errors.New("not authorized to cancel this consultation")

	// ErrNotAuthorizedToComplete возвращается, когда завершить пытается
	// кто-либо кроме назначенного консультанта
	ErrNotAuthorizedToComplete = errors.New("not authorized to complete this consultation")

	// ErrTooEarlyToComplete возвращается при попытке завершить консультацию
	// до окончания её временного окна
	ErrTooEarlyToComplete = errors.New("too early to complete this consultation")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAccessDenied возвращается, когда у вызывающего нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
