package get_consultant_consultations

import (
	"context"

	"github.com/m04kA/HCP-ConsultationService/internal/service/consultations/models"
)

type ConsultationService interface {
	GetConsultantConsultations(ctx context.Context, req *models.ListRequest) (*models.ConsultationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
