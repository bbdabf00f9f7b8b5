package consultations

import (
	"context"
	"time"

	"github.com/m04kA/HCP-ConsultationService/internal/domain"
	"github.com/m04kA/HCP-ConsultationService/internal/integrations/accountservice"
	"github.com/m04kA/HCP-ConsultationService/internal/integrations/notifyservice"
	"github.com/m04kA/HCP-ConsultationService/internal/integrations/profileservice"
)

// ConsultationRepository интерфейс репозитория консультаций
type ConsultationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Consultation, error)
	GetByParticipantID(ctx context.Context, accountID int64, status *domain.ConsultationStatus) ([]*domain.Consultation, error)
	GetWithFilter(ctx context.Context, filter domain.ConsultationsFilter) ([]*domain.Consultation, error)
	Confirm(ctx context.Context, id int64, meetingURL string) error
	Cancel(ctx context.Context, id int64, reason string) error
	Complete(ctx context.Context, id int64) error
}

// AccountServiceClient интерфейс клиента для AccountService
type AccountServiceClient interface {
	GetAccount(ctx context.Context, accountID int64) (*accountservice.Account, error)
}

// ProfileServiceClient интерфейс клиента для ProfileService
type ProfileServiceClient interface {
	GetConsultantProfileWithGracefulDegradation(ctx context.Context, consultantID int64) *profileservice.Profile
}

// NotifyServiceClient интерфейс клиента для NotifyService
type NotifyServiceClient interface {
	SendConfirmation(ctx context.Context, n *notifyservice.ConfirmationNotification) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
