package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxCancellationReasonLength = 500
)

// InactiveStatuses список статусов, не занимающих временное окно.
// Используется при подсчёте пересечений и фильтрации выборок.
var InactiveStatuses = []ConsultationStatus{
	StatusCanceled,
}

// ActiveStatuses список статусов, занимающих временное окно
var ActiveStatuses = []ConsultationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// ValidStatuses полный список допустимых статусов
var ValidStatuses = []ConsultationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCanceled,
	StatusCompleted,
}
