package domain

import (
	"time"
)

// ConsultationStatus represents the status of a consultation
type ConsultationStatus string

const (
	StatusPending   ConsultationStatus = "pending"
	StatusConfirmed ConsultationStatus = "confirmed"
	StatusCanceled  ConsultationStatus = "canceled"
	StatusCompleted ConsultationStatus = "completed"
)

// Consultation represents a booked time window between a customer and a consultant
type Consultation struct {
	ID           int64
	CustomerID   int64
	ConsultantID int64

	ScheduledDate time.Time // дата приёма (без времени)
	SlotLabel     string    // метка слота каталога, например "8-10"
	StartAt       time.Time
	EndAt         time.Time // полуоткрытый интервал [StartAt, EndAt)

	Status ConsultationStatus

	// MeetingURL ссылка на встречу, выставляется только при переходе в confirmed
	MeetingURL *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the consultation still occupies its time window.
// Только отменённые консультации освобождают слот.
func (c *Consultation) IsActive() bool {
	return c.Status != StatusCanceled
}

// IsTerminal returns true if no further status transition is allowed
func (c *Consultation) IsTerminal() bool {
	return c.Status == StatusCanceled || c.Status == StatusCompleted
}

// CanBeConfirmed returns true if the consultation can transition to confirmed
func (c *Consultation) CanBeConfirmed() bool {
	return c.Status == StatusPending
}

// CanBeCancelled returns true if the consultation can transition to canceled
func (c *Consultation) CanBeCancelled() bool {
	return c.Status == StatusPending || c.Status == StatusConfirmed
}

// CanBeCompleted returns true if the consultation can transition to completed
func (c *Consultation) CanBeCompleted() bool {
	return c.Status == StatusConfirmed
}

// Overlaps reports whether the consultation interval overlaps [start, end).
// Интервалы полуоткрытые: граничащие интервалы пересечением не считаются.
func (c *Consultation) Overlaps(start, end time.Time) bool {
	return c.StartAt.Before(end) && c.EndAt.After(start)
}

// IsParticipant returns true if the account is the customer or the assigned consultant
func (c *Consultation) IsParticipant(accountID int64) bool {
	return c.CustomerID == accountID || c.ConsultantID == accountID
}

// ConsultationsFilter фильтр для выборки консультаций
type ConsultationsFilter struct {
	ConsultantID    *int64              // Фильтр по консультанту (опционально)
	CustomerID      *int64              // Фильтр по клиенту (опционально)
	Date            *time.Time          // Фильтр по дате приёма (опционально)
	Status          *ConsultationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool                // Включать ли отменённые консультации
}
