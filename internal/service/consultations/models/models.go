package models

import (
	"errors"
	"time"

	"github.com/m04kA/HCP-ConsultationService/internal/domain"
	"github.com/m04kA/HCP-ConsultationService/internal/integrations/profileservice"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid consultation status")
)

// Request модели

// CancelConsultationRequest запрос на отмену консультации
type CancelConsultationRequest struct {
	CallerID           int64  `json:"callerId"`
	CancellationReason string `json:"cancellationReason"`
}

// ListRequest запрос на выборку консультаций вызывающего
type ListRequest struct {
	CallerID int64   `json:"callerId"`
	Status   *string `json:"status,omitempty"`
}

// Response модели

// ConsultationResponse ответ с данными консультации
type ConsultationResponse struct {
	ID           int64  `json:"id"`
	CustomerID   int64  `json:"customerId"`
	ConsultantID int64  `json:"consultantId"`
	Date         string `json:"date"`      // "2026-09-15"
	SlotLabel    string `json:"slotLabel"` // "8-10"
	StartAt      string `json:"startAt"`   // ISO 8601
	EndAt        string `json:"endAt"`     // ISO 8601
	Status       string `json:"status"`

	MeetingURL         *string `json:"meetingUrl,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConsultationViewResponse консультация, обогащённая данными консультанта
// для отображения. Поля профиля присутствуют, только если профиль найден.
type ConsultationViewResponse struct {
	ConsultationResponse

	ConsultantName  string  `json:"consultantName,omitempty"`
	Qualifications  *string `json:"qualifications,omitempty"`
	ExperienceYears *int    `json:"experienceYears,omitempty"`
	Bio             *string `json:"bio,omitempty"`
}

// ConsultationListResponse ответ со списком консультаций
type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
}

// Методы конвертации

// FromDomainConsultation конвертирует domain модель в DTO
func FromDomainConsultation(c *domain.Consultation) *ConsultationResponse {
	if c == nil {
		return nil
	}

	resp := &ConsultationResponse{
		ID:                 c.ID,
		CustomerID:         c.CustomerID,
		ConsultantID:       c.ConsultantID,
		Date:               c.ScheduledDate.Format(domain.DateFormat),
		SlotLabel:          c.SlotLabel,
		StartAt:            c.StartAt.Format(time.RFC3339),
		EndAt:              c.EndAt.Format(time.RFC3339),
		Status:             string(c.Status),
		MeetingURL:         c.MeetingURL,
		CancellationReason: c.CancellationReason,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if c.CancelledAt != nil {
		cancelledStr := c.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainConsultationList конвертирует список domain моделей в DTO
func FromDomainConsultationList(consultations []*domain.Consultation) *ConsultationListResponse {
	if consultations == nil {
		return &ConsultationListResponse{
			Consultations: []ConsultationResponse{},
		}
	}

	resp := &ConsultationListResponse{
		Consultations: make([]ConsultationResponse, len(consultations)),
	}

	for i, c := range consultations {
		if cr := FromDomainConsultation(c); cr != nil {
			resp.Consultations[i] = *cr
		}
	}

	return resp
}

// AssembleView собирает представление консультации: запись плюс отображаемое
// имя консультанта и, при наличии, данные его профиля
func AssembleView(c *domain.Consultation, consultantName string, profile *profileservice.Profile) *ConsultationViewResponse {
	view := &ConsultationViewResponse{
		ConsultationResponse: *FromDomainConsultation(c),
		ConsultantName:       consultantName,
	}

	if profile != nil {
		view.Qualifications = &profile.Qualifications
		view.ExperienceYears = &profile.ExperienceYears
		view.Bio = &profile.Bio
	}

	return view
}

// ToDomainConsultationStatus конвертирует строку в domain.ConsultationStatus с валидацией
func ToDomainConsultationStatus(status string) (domain.ConsultationStatus, error) {
	s := domain.ConsultationStatus(status)

	for _, valid := range domain.ValidStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
