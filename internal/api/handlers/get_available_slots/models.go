package get_available_slots

import (
	"time"

	"github.com/m04kA/HCP-ConsultationService/internal/domain"
	getAvailableSlots "github.com/m04kA/HCP-ConsultationService/internal/usecase/get_available_slots"
)

// SlotResponse доступность одного слота каталога
type SlotResponse struct {
	Label     string `json:"label"`   // "8-10"
	StartAt   string `json:"startAt"` // ISO 8601
	EndAt     string `json:"endAt"`   // ISO 8601
	Available bool   `json:"available"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ConsultantID int64          `json:"consultantId"`
	Date         string         `json:"date"` // "2026-09-15"
	Slots        []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			Label:     s.Label,
			StartAt:   s.StartAt.Format(time.RFC3339),
			EndAt:     s.EndAt.Format(time.RFC3339),
			Available: s.Available,
		}
	}

	return &AvailableSlotsResponse{
		ConsultantID: resp.ConsultantID,
		Date:         resp.Date.Format(domain.DateFormat),
		Slots:        slots,
	}
}
