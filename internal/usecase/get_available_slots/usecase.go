package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HCP-ConsultationService/internal/domain"
	accountClient "github.com/m04kA/HCP-ConsultationService/internal/integrations/accountservice"
	"github.com/m04kA/HCP-ConsultationService/pkg/ptr"
)

// UseCase use case проекции доступности слотов консультанта на дату.
//
// Результат — снимок на момент чтения: между ответом и попыткой брони слот
// может занять конкурентный клиент. "Available" — подсказка для UI,
// а не гарантия; авторитетная проверка выполняется на записи.
type UseCase struct {
	consultationRepo ConsultationRepository
	accountClient    AccountServiceClient
	catalog          *domain.SlotCatalog
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	consultationRepo ConsultationRepository,
	accountClient AccountServiceClient,
	catalog *domain.SlotCatalog,
	logger Logger,
) *UseCase {
	return &UseCase{
		consultationRepo: consultationRepo,
		accountClient:    accountClient,
		catalog:          catalog,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступности слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: consultant=%d, date=%s",
		req.ConsultantID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем дату ДО обращения к справочнику аккаунтов:
	// для заведомо некорректного запроса лишней работы не делаем
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrPastDate
	}

	// 4. Получаем аккаунт консультанта
	account, err := uc.accountClient.GetAccount(ctx, req.ConsultantID)
	if err != nil {
		if errors.Is(err, accountClient.ErrAccountNotFound) {
			uc.logger.Warn("GetAvailableSlots: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get account id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: failed to get account: %v", ErrInternal, err)
	}

	// 5. Проверяем роль
	role, err := account.ParsedRole()
	if err != nil || !role.IsConsultant() {
		uc.logger.Warn("GetAvailableSlots: account id=%d has role=%s, not a consultant",
			req.ConsultantID, account.Role)
		return nil, ErrNotAConsultant
	}

	// 6. Проверяем активность
	if !account.IsActive {
		uc.logger.Warn("GetAvailableSlots: consultant id=%d is inactive", req.ConsultantID)
		return nil, ErrConsultantUnavailable
	}

	// 7. Разворачиваем каталог слотов на дату
	windows, err := uc.catalog.WindowsFor(req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve catalog windows: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve catalog windows: %v", ErrInternal, err)
	}

	// 8. Получаем активные консультации консультанта на эту дату
	filter := domain.ConsultationsFilter{
		ConsultantID:    ptr.Ptr(req.ConsultantID),
		Date:            ptr.Ptr(req.Date),
		IncludeInactive: false, // Отменённые консультации слот не занимают
	}

	consultations, err := uc.consultationRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get consultations: %v", err)
		return nil, fmt.Errorf("%w: failed to get consultations: %v", ErrInternal, err)
	}

	// 9. Вычисляем доступность каждого окна каталога
	slots := projectAvailability(windows, consultations)

	uc.logger.Info("GetAvailableSlots: projected %d slots for consultant=%d, date=%s",
		len(slots), req.ConsultantID, req.Date.Format(domain.DateFormat))

	return &Response{
		ConsultantID: req.ConsultantID,
		Date:         req.Date,
		Slots:        slots,
	}, nil
}
