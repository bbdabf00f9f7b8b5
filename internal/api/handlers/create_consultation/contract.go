package create_consultation

import (
	"context"

	createConsultation "github.com/m04kA/HCP-ConsultationService/internal/usecase/create_consultation"
)

type CreateConsultationUseCase interface {
	Execute(ctx context.Context, req *createConsultation.Request) (*createConsultation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
