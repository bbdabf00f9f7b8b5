package create_consultation

import (
	"time"

	"github.com/m04kA/HCP-ConsultationService/internal/domain"
	createConsultation "github.com/m04kA/HCP-ConsultationService/internal/usecase/create_consultation"
)

// CreateConsultationRequest HTTP request model.
// Клиент определяется по заголовку аутентификации, не по телу запроса.
type CreateConsultationRequest struct {
	ConsultantID int64  `json:"consultantId"`
	Date         string `json:"date"`      // "2026-09-15"
	SlotLabel    string `json:"slotLabel"` // "8-10"
}

// ConsultationResponse HTTP response model
type ConsultationResponse struct {
	ID           int64  `json:"id"`
	CustomerID   int64  `json:"customerId"`
	ConsultantID int64  `json:"consultantId"`
	Date         string `json:"date"`
	SlotLabel    string `json:"slotLabel"`
	StartAt      string `json:"startAt"` // ISO 8601
	EndAt        string `json:"endAt"`   // ISO 8601
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateConsultationRequest) ToUseCaseRequest(customerID int64) (*createConsultation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createConsultation.Request{
		CustomerID:   customerID,
		ConsultantID: r.ConsultantID,
		Date:         date,
		SlotLabel:    r.SlotLabel,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createConsultation.Response) *ConsultationResponse {
	return &ConsultationResponse{
		ID:           resp.ID,
		CustomerID:   resp.CustomerID,
		ConsultantID: resp.ConsultantID,
		Date:         resp.Date.Format(domain.DateFormat),
		SlotLabel:    resp.SlotLabel,
		StartAt:      resp.StartAt.Format(time.RFC3339),
		EndAt:        resp.EndAt.Format(time.RFC3339),
		Status:       resp.Status,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
