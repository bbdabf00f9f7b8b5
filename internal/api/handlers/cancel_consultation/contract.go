package cancel_consultation

import (
	"context"

	"github.com/m04kA/HCP-ConsultationService/internal/service/consultations/models"
)

type ConsultationService interface {
	Cancel(ctx context.Context, id int64, req *models.CancelConsultationRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
