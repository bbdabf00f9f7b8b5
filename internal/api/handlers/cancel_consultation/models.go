package cancel_consultation

import (
	"github.com/m04kA/HCP-ConsultationService/internal/service/consultations/models"
)

// CancelConsultationRequest HTTP request model, тело опционально
type CancelConsultationRequest struct {
	CancellationReason string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelConsultationRequest) ToServiceRequest(callerID int64) *models.CancelConsultationRequest {
	return &models.CancelConsultationRequest{
		CallerID:           callerID,
		CancellationReason: r.CancellationReason,
	}
}
