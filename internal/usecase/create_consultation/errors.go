package create_consultation

import "errors"

var (
	// ErrInvalidSlotLabel возвращается, когда метка слота не входит в каталог
	ErrInvalidSlotLabel = errors.New("create_consultation: invalid slot label")

	// ErrPastDate возвращается при попытке брони на прошедшую дату
	ErrPastDate = errors.New("create_consultation: date is in the past")

	// ErrCannotBookSelf возвращается, когда консультант пытается записаться сам к себе
	ErrCannotBookSelf = errors.New("create_consultation: cannot book consultation with yourself")

	// ErrCustomerNotFound возвращается, когда аккаунт клиента не найден
	ErrCustomerNotFound = errors.New("create_consultation: customer not found")

	// ErrConsultantNotFound возвращается, когда консультант не найден
	ErrConsultantNotFound = errors.New("create_consultation: consultant not found")

	// ErrNotAConsultant возвращается, когда аккаунт не имеет роли консультанта
	ErrNotAConsultant = errors.New("create_consultation: account is not a consultant")

	// ErrConsultantUnavailable возвращается, когда консультант деактивирован
	ErrConsultantUnavailable = errors.New("create_consultation: consultant is unavailable")

	// ErrSlotNotAvailable возвращается, когда слот занят по данным pre-check
	ErrSlotNotAvailable = errors.New("create_consultation: slot is not available")

	// ErrSlotTaken возвращается при проигрыше гонки: слот занят конкурентной
	// бронью между pre-check и вставкой, конфликт зафиксирован constraint БД
	ErrSlotTaken = errors.New("create_consultation: slot was just taken")

	// ErrBookingFailed возвращается при ошибке записи, не относящейся
	// к известному constraint непересечения
	ErrBookingFailed = errors.New("create_consultation: booking failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_consultation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_consultation: internal error")
)
