package create_consultation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HCP-ConsultationService/internal/domain"
	consultationRepo "github.com/m04kA/HCP-ConsultationService/internal/infra/storage/consultation"
	accountClient "github.com/m04kA/HCP-ConsultationService/internal/integrations/accountservice"
	"github.com/m04kA/HCP-ConsultationService/pkg/ptr"
)

// UseCase use case создания консультации.
//
// Доступность слота проверяется дважды: pre-check внутри сериализуемой
// транзакции и constraint непересечения при вставке. Pre-check один небезопасен
// при конкурентных записях, арбитром конфликта выступает БД.
type UseCase struct {
	consultationRepo ConsultationRepository
	accountClient    AccountServiceClient
	catalog          *domain.SlotCatalog
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	consultationRepo ConsultationRepository,
	accountClient AccountServiceClient,
	catalog *domain.SlotCatalog,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		consultationRepo: consultationRepo,
		accountClient:    accountClient,
		catalog:          catalog,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания консультации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateConsultation: customer=%d, consultant=%d, date=%s, slot=%s",
		req.CustomerID, req.ConsultantID, req.Date.Format(domain.DateFormat), req.SlotLabel)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateConsultation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// Дешёвые проверки идут до обращений к справочнику аккаунтов:
	// для некорректного запроса внешних вызовов не делаем.

	// 3. Разрешаем метку слота через каталог
	slot, err := uc.catalog.Resolve(req.Date, req.SlotLabel)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSlotLabel) {
			uc.logger.Warn("CreateConsultation: unknown slot label %q", req.SlotLabel)
			return nil, fmt.Errorf("%w: %q", ErrInvalidSlotLabel, req.SlotLabel)
		}
		uc.logger.Error("CreateConsultation: failed to resolve slot %q: %v", req.SlotLabel, err)
		return nil, fmt.Errorf("%w: failed to resolve slot: %v", ErrInternal, err)
	}

	// 4. Дата не в прошлом. Проверяется и здесь, независимо от проекции
	// доступности: между просмотром слотов и бронью время могло уйти
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateConsultation: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrPastDate
	}

	// 5. Клиент и консультант — разные аккаунты
	if req.CustomerID == req.ConsultantID {
		uc.logger.Warn("CreateConsultation: account id=%d attempted to book itself", req.CustomerID)
		return nil, ErrCannotBookSelf
	}

	// 6. Клиент существует
	if _, err := uc.accountClient.GetAccount(ctx, req.CustomerID); err != nil {
		if errors.Is(err, accountClient.ErrAccountNotFound) {
			uc.logger.Warn("CreateConsultation: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateConsultation: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	// 7. Консультант существует, имеет роль консультанта и активен
	consultant, err := uc.accountClient.GetAccount(ctx, req.ConsultantID)
	if err != nil {
		if errors.Is(err, accountClient.ErrAccountNotFound) {
			uc.logger.Warn("CreateConsultation: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		uc.logger.Error("CreateConsultation: failed to get consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
	}

	role, err := consultant.ParsedRole()
	if err != nil || !role.IsConsultant() {
		uc.logger.Warn("CreateConsultation: account id=%d has role=%s, not a consultant",
			req.ConsultantID, consultant.Role)
		return nil, ErrNotAConsultant
	}

	if !consultant.IsActive {
		uc.logger.Warn("CreateConsultation: consultant id=%d is inactive", req.ConsultantID)
		return nil, ErrConsultantUnavailable
	}

	// Переменная для хранения результата
	var result *domain.Consultation

	// 8. Pre-check доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Активные консультации консультанта на эту дату с блокировкой (FOR UPDATE)
		filter := domain.ConsultationsFilter{
			ConsultantID:    ptr.Ptr(req.ConsultantID),
			Date:            ptr.Ptr(req.Date),
			IncludeInactive: false,
		}

		existing, err := uc.consultationRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateConsultation: failed to get consultations: %v", err)
			return fmt.Errorf("%w: failed to get consultations: %v", ErrInternal, err)
		}

		// 8.2. Pre-check: слот свободен от активных консультаций.
		// Тот же предикат пересечения, что и в проекции доступности
		for _, c := range existing {
			if c.IsActive() && c.Overlaps(slot.StartAt, slot.EndAt) {
				uc.logger.Warn("CreateConsultation: slot %s on %s already occupied by consultation id=%d",
					req.SlotLabel, req.Date.Format(domain.DateFormat), c.ID)
				return fmt.Errorf("%w: slot=%s, date=%s",
					ErrSlotNotAvailable, req.SlotLabel, req.Date.Format(domain.DateFormat))
			}
		}

		// 8.3. Создаем консультацию в статусе pending
		consultation := &domain.Consultation{
			CustomerID:    req.CustomerID,
			ConsultantID:  req.ConsultantID,
			ScheduledDate: req.Date,
			SlotLabel:     slot.Label,
			StartAt:       slot.StartAt,
			EndAt:         slot.EndAt,
			Status:        domain.StatusPending,
		}

		created, err := uc.consultationRepo.Create(txCtx, consultation)
		if err != nil {
			// Проигрыш гонки: конкурентная бронь успела первой,
			// constraint непересечения отклонил вставку
			if errors.Is(err, consultationRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateConsultation: lost booking race for consultant=%d, slot=%s, date=%s",
					req.ConsultantID, req.SlotLabel, req.Date.Format(domain.DateFormat))
				return fmt.Errorf("%w: slot=%s, date=%s",
					ErrSlotTaken, req.SlotLabel, req.Date.Format(domain.DateFormat))
			}
			uc.logger.Error("CreateConsultation: failed to create consultation: %v", err)
			return fmt.Errorf("%w: %v", ErrBookingFailed, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateConsultation: successfully created consultation id=%d", result.ID)

	return &Response{
		ID:           result.ID,
		CustomerID:   result.CustomerID,
		ConsultantID: result.ConsultantID,
		Date:         result.ScheduledDate,
		SlotLabel:    result.SlotLabel,
		StartAt:      result.StartAt,
		EndAt:        result.EndAt,
		Status:       string(result.Status),
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}
