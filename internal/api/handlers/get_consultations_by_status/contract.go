package get_consultations_by_status

import (
	"context"

	"github.com/m04kA/HCP-ConsultationService/internal/service/consultations/models"
)

type ConsultationService interface {
	GetByStatus(ctx context.Context, callerID int64, status *string) (*models.ConsultationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
