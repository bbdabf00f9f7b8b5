package get_consultation

import (
	"context"

	"github.com/m04kA/HCP-ConsultationService/internal/service/consultations/models"
)

type ConsultationService interface {
	GetByID(ctx context.Context, id int64, callerID int64) (*models.ConsultationViewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
