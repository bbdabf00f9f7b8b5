package consultations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/HCP-ConsultationService/internal/domain"
	consultationRepo "github.com/m04kA/HCP-ConsultationService/internal/infra/storage/consultation"
	accountClient "github.com/m04kA/HCP-ConsultationService/internal/integrations/accountservice"
	"github.com/m04kA/HCP-ConsultationService/internal/integrations/notifyservice"
	"github.com/m04kA/HCP-ConsultationService/internal/service/consultations/models"
)

// meetingURLBase базовый адрес комнат видеовстреч платформы
const meetingURLBase = "https://meet.hcp-platform.ru/c/"

// Service сервис жизненного цикла и выборок консультаций.
//
// Переходы статусов: pending -> confirmed | canceled,
// confirmed -> canceled | completed. Canceled и completed терминальны,
// обратного пути в pending нет.
type Service struct {
	consultationRepo ConsultationRepository
	accountClient    AccountServiceClient
	profileClient    ProfileServiceClient
	notifyClient     NotifyServiceClient
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса консультаций
func NewService(
	consultationRepo ConsultationRepository,
	accountClient AccountServiceClient,
	profileClient ProfileServiceClient,
	notifyClient NotifyServiceClient,
	logger Logger,
) *Service {
	return &Service{
		consultationRepo: consultationRepo,
		accountClient:    accountClient,
		profileClient:    profileClient,
		notifyClient:     notifyClient,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Confirm переводит консультацию pending -> confirmed.
// Подтвердить может только назначенный консультант. При успехе генерируется
// ссылка на встречу и отправляется уведомление; сбой уведомления логируется
// и не откатывает переход.
func (s *Service) Confirm(ctx context.Context, id int64, callerID int64) (*models.ConsultationResponse, error) {
	s.logger.Info("Confirm: consultation id=%d by caller=%d", id, callerID)

	consultation, err := s.getConsultation(ctx, "Confirm", id)
	if err != nil {
		return nil, err
	}

	// Допустимость перехода проверяем до авторизации: попытка подтвердить
	// терминальную или уже подтверждённую консультацию — ошибка перехода
	if !consultation.CanBeConfirmed() {
		s.logger.Warn("Confirm: consultation id=%d has status=%s, cannot confirm", id, consultation.Status)
		return nil, ErrInvalidTransition
	}

	if consultation.ConsultantID != callerID {
		s.logger.Warn("Confirm: caller=%d is not the assigned consultant of consultation id=%d", callerID, id)
		return nil, ErrNotAuthorizedToConfirm
	}

	meetingURL := meetingURLBase + uuid.NewString()

	if err := s.consultationRepo.Confirm(ctx, id, meetingURL); err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			s.logger.Warn("Confirm: consultation id=%d not found during update", id)
			return nil, ErrConsultationNotFound
		}
		s.logger.Error("Confirm: repository error for consultation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	consultation.Status = domain.StatusConfirmed
	consultation.MeetingURL = &meetingURL

	// Уведомление — fire-and-forget: переход уже зафиксирован
	s.dispatchConfirmation(ctx, consultation)

	s.logger.Info("Confirm: successfully confirmed consultation id=%d", id)
	return models.FromDomainConsultation(consultation), nil
}

// Cancel переводит консультацию pending|confirmed -> canceled.
// Отменить может клиент или назначенный консультант; третьим лицам,
// включая staff и администраторов, отмена запрещена.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelConsultationRequest) error {
	s.logger.Info("Cancel: consultation id=%d by caller=%d", id, req.CallerID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for consultation id=%d", id)
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	consultation, err := s.getConsultation(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	if !consultation.CanBeCancelled() {
		s.logger.Warn("Cancel: consultation id=%d has status=%s, cannot cancel", id, consultation.Status)
		return ErrInvalidTransition
	}

	if !consultation.IsParticipant(req.CallerID) {
		s.logger.Warn("Cancel: caller=%d is not a participant of consultation id=%d", req.CallerID, id)
		return ErrNotAuthorizedToCancel
	}

	if err := s.consultationRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			s.logger.Warn("Cancel: consultation id=%d not found during update", id)
			return ErrConsultationNotFound
		}
		s.logger.Error("Cancel: repository error for consultation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled consultation id=%d", id)
	return nil
}

// Complete переводит консультацию confirmed -> completed.
// Завершить можно только после окончания временного окна и только
// назначенным консультантом. Временная проверка идёт раньше авторизации:
// "слишком рано" не зависит от роли вызывающего.
func (s *Service) Complete(ctx context.Context, id int64, callerID int64) error {
	s.logger.Info("Complete: consultation id=%d by caller=%d", id, callerID)

	consultation, err := s.getConsultation(ctx, "Complete", id)
	if err != nil {
		return err
	}

	if !consultation.CanBeCompleted() {
		s.logger.Warn("Complete: consultation id=%d has status=%s, cannot complete", id, consultation.Status)
		return ErrInvalidTransition
	}

	now := s.timeProvider.Now()
	if now.Before(consultation.EndAt) {
		s.logger.Warn("Complete: consultation id=%d window ends at %s, now is %s",
			id, consultation.EndAt, now)
		return ErrTooEarlyToComplete
	}

	if consultation.ConsultantID != callerID {
		s.logger.Warn("Complete: caller=%d is not the assigned consultant of consultation id=%d", callerID, id)
		return ErrNotAuthorizedToComplete
	}

	if err := s.consultationRepo.Complete(ctx, id); err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			s.logger.Warn("Complete: consultation id=%d not found during update", id)
			return ErrConsultationNotFound
		}
		s.logger.Error("Complete: repository error for consultation id=%d: %v", id, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: successfully completed consultation id=%d", id)
	return nil
}

// GetByID получает представление консультации.
// Доступ: участники консультации, а также staff и администраторы.
func (s *Service) GetByID(ctx context.Context, id int64, callerID int64) (*models.ConsultationViewResponse, error) {
	s.logger.Info("GetByID: fetching consultation id=%d for caller=%d", id, callerID)

	consultation, err := s.getConsultation(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !consultation.IsParticipant(callerID) {
		caller, err := s.resolveCaller(ctx, "GetByID", callerID)
		if err != nil {
			return nil, err
		}
		role, roleErr := caller.ParsedRole()
		if roleErr != nil || !role.CanListAllConsultations() {
			s.logger.Warn("GetByID: access denied for caller=%d to consultation id=%d", callerID, id)
			return nil, ErrAccessDenied
		}
	}

	view := s.assembleView(ctx, consultation)

	s.logger.Info("GetByID: successfully fetched consultation id=%d", id)
	return view, nil
}

// GetMyConsultations получает все консультации, в которых вызывающий участвует
// как клиент или как консультант. Опционально фильтрует по статусу.
func (s *Service) GetMyConsultations(ctx context.Context, req *models.ListRequest) (*models.ConsultationListResponse, error) {
	s.logger.Info("GetMyConsultations: caller=%d, status=%v", req.CallerID, req.Status)

	if _, err := s.resolveCaller(ctx, "GetMyConsultations", req.CallerID); err != nil {
		return nil, err
	}

	status, err := s.parseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("GetMyConsultations: invalid status=%s for caller=%d", *req.Status, req.CallerID)
		return nil, err
	}

	consultations, err := s.consultationRepo.GetByParticipantID(ctx, req.CallerID, status)
	if err != nil {
		s.logger.Error("GetMyConsultations: repository error for caller=%d: %v", req.CallerID, err)
		return nil, fmt.Errorf("%w: GetMyConsultations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMyConsultations: fetched %d consultations for caller=%d", len(consultations), req.CallerID)
	return models.FromDomainConsultationList(consultations), nil
}

// GetConsultantConsultations получает консультации, назначенные вызывающему
// как консультанту. Требует роли консультанта.
func (s *Service) GetConsultantConsultations(ctx context.Context, req *models.ListRequest) (*models.ConsultationListResponse, error) {
	s.logger.Info("GetConsultantConsultations: caller=%d, status=%v", req.CallerID, req.Status)

	caller, err := s.resolveCaller(ctx, "GetConsultantConsultations", req.CallerID)
	if err != nil {
		return nil, err
	}

	role, roleErr := caller.ParsedRole()
	if roleErr != nil || !role.IsConsultant() {
		s.logger.Warn("GetConsultantConsultations: caller=%d has role=%s, not a consultant",
			req.CallerID, caller.Role)
		return nil, ErrAccessDenied
	}

	status, err := s.parseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("GetConsultantConsultations: invalid status=%s for caller=%d", *req.Status, req.CallerID)
		return nil, err
	}

	filter := domain.ConsultationsFilter{
		ConsultantID:    &req.CallerID,
		Status:          status,
		IncludeInactive: true, // Консультант видит и отменённые назначения
	}

	consultations, err := s.consultationRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetConsultantConsultations: repository error for caller=%d: %v", req.CallerID, err)
		return nil, fmt.Errorf("%w: GetConsultantConsultations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetConsultantConsultations: fetched %d consultations for caller=%d",
		len(consultations), req.CallerID)
	return models.FromDomainConsultationList(consultations), nil
}

// GetByStatus получает консультации всех аккаунтов, отфильтрованные по статусу.
// Доступно только staff и администраторам.
func (s *Service) GetByStatus(ctx context.Context, callerID int64, status *string) (*models.ConsultationListResponse, error) {
	s.logger.Info("GetByStatus: caller=%d, status=%v", callerID, status)

	caller, err := s.resolveCaller(ctx, "GetByStatus", callerID)
	if err != nil {
		return nil, err
	}

	role, roleErr := caller.ParsedRole()
	if roleErr != nil || !role.CanListAllConsultations() {
		s.logger.Warn("GetByStatus: caller=%d with role=%s may not list all consultations",
			callerID, caller.Role)
		return nil, ErrAccessDenied
	}

	domainStatus, err := s.parseStatusFilter(status)
	if err != nil {
		s.logger.Warn("GetByStatus: invalid status=%s for caller=%d", *status, callerID)
		return nil, err
	}

	filter := domain.ConsultationsFilter{
		Status:          domainStatus,
		IncludeInactive: true,
	}

	consultations, err := s.consultationRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetByStatus: repository error for caller=%d: %v", callerID, err)
		return nil, fmt.Errorf("%w: GetByStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByStatus: fetched %d consultations", len(consultations))
	return models.FromDomainConsultationList(consultations), nil
}

// Вспомогательные методы

// getConsultation получает консультацию по ID с маппингом ошибки репозитория
func (s *Service) getConsultation(ctx context.Context, op string, id int64) (*domain.Consultation, error) {
	consultation, err := s.consultationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			s.logger.Warn("%s: consultation id=%d not found", op, id)
			return nil, ErrConsultationNotFound
		}
		s.logger.Error("%s: repository error for consultation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return consultation, nil
}

// resolveCaller получает аккаунт вызывающего из справочника
func (s *Service) resolveCaller(ctx context.Context, op string, callerID int64) (*accountClient.Account, error) {
	caller, err := s.accountClient.GetAccount(ctx, callerID)
	if err != nil {
		if errors.Is(err, accountClient.ErrAccountNotFound) {
			s.logger.Warn("%s: caller id=%d not found", op, callerID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: failed to get caller id=%d: %v", op, callerID, err)
		return nil, fmt.Errorf("%w: %s - failed to get caller: %v", ErrInternal, op, err)
	}
	return caller, nil
}

// parseStatusFilter конвертирует опциональный строковый статус в доменный
func (s *Service) parseStatusFilter(status *string) (*domain.ConsultationStatus, error) {
	if status == nil {
		return nil, nil
	}
	domainStatus, err := models.ToDomainConsultationStatus(*status)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	return &domainStatus, nil
}

// assembleView собирает представление: запись консультации, имя консультанта
// и поля профиля при его наличии. Отсутствие профиля — не ошибка.
func (s *Service) assembleView(ctx context.Context, c *domain.Consultation) *models.ConsultationViewResponse {
	consultantName := ""
	if account, err := s.accountClient.GetAccount(ctx, c.ConsultantID); err != nil {
		// Имя — презентационные данные, представление собирается и без него
		s.logger.Warn("assembleView: failed to get consultant id=%d: %v", c.ConsultantID, err)
	} else {
		consultantName = account.DisplayName
	}

	profile := s.profileClient.GetConsultantProfileWithGracefulDegradation(ctx, c.ConsultantID)

	return models.AssembleView(c, consultantName, profile)
}

// dispatchConfirmation отправляет уведомление о подтверждении.
// Ошибка доставки логируется и не влияет на результат операции.
func (s *Service) dispatchConfirmation(ctx context.Context, c *domain.Consultation) {
	notification := &notifyservice.ConfirmationNotification{
		ConsultationID: c.ID,
		CustomerID:     c.CustomerID,
		ConsultantID:   c.ConsultantID,
		ScheduledDate:  c.ScheduledDate.Format(domain.DateFormat),
		SlotLabel:      c.SlotLabel,
		MeetingURL:     *c.MeetingURL,
	}

	if err := s.notifyClient.SendConfirmation(ctx, notification); err != nil {
		s.logger.Error("dispatchConfirmation: failed to notify about consultation id=%d: %v", c.ID, err)
	}
}
