package create_consultation

import (
	"errors"
	"net/http"

	"github.com/m04kA/HCP-ConsultationService/internal/api/handlers"
	"github.com/m04kA/HCP-ConsultationService/internal/api/middleware"
	createConsultation "github.com/m04kA/HCP-ConsultationService/internal/usecase/create_consultation"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidSlotLabel      = "некорректная метка слота"
	msgPastDate              = "дата уже прошла"
	msgCannotBookSelf        = "нельзя записаться на консультацию к самому себе"
	msgCustomerNotFound      = "аккаунт клиента не найден"
	msgConsultantNotFound    = "консультант не найден"
	msgNotAConsultant        = "аккаунт не является консультантом"
	msgConsultantUnavailable = "консультант временно недоступен"
	msgSlotTaken             = "выбранный слот уже занят"
)

type Handler struct {
	useCase CreateConsultationUseCase
	logger  Logger
}

func NewHandler(useCase CreateConsultationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/consultations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /consultations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateConsultationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /consultations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /consultations - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createConsultation.ErrInvalidSlotLabel):
			h.logger.Warn("POST /consultations - Invalid slot label: customer_id=%d, slot=%s", customerID, req.SlotLabel)
			handlers.RespondBadRequest(w, msgInvalidSlotLabel)

		case errors.Is(err, createConsultation.ErrPastDate):
			h.logger.Warn("POST /consultations - Past date: customer_id=%d, date=%s", customerID, req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createConsultation.ErrCannotBookSelf):
			h.logger.Warn("POST /consultations - Self booking attempt: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgCannotBookSelf)

		case errors.Is(err, createConsultation.ErrCustomerNotFound):
			h.logger.Warn("POST /consultations - Customer not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createConsultation.ErrConsultantNotFound):
			h.logger.Warn("POST /consultations - Consultant not found: consultant_id=%d", req.ConsultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, createConsultation.ErrNotAConsultant):
			h.logger.Warn("POST /consultations - Not a consultant: consultant_id=%d", req.ConsultantID)
			handlers.RespondNotFound(w, msgNotAConsultant)

		case errors.Is(err, createConsultation.ErrConsultantUnavailable):
			h.logger.Warn("POST /consultations - Consultant unavailable: consultant_id=%d", req.ConsultantID)
			handlers.RespondConflict(w, msgConsultantUnavailable)

		case errors.Is(err, createConsultation.ErrSlotNotAvailable),
			errors.Is(err, createConsultation.ErrSlotTaken):
			h.logger.Warn("POST /consultations - Slot taken: customer_id=%d, consultant_id=%d, date=%s, slot=%s",
				customerID, req.ConsultantID, req.Date, req.SlotLabel)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createConsultation.ErrInvalidInput):
			h.logger.Warn("POST /consultations - Invalid input: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /consultations - Failed to create consultation: customer_id=%d, consultant_id=%d, error=%v",
				customerID, req.ConsultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /consultations - Consultation created: consultation_id=%d, customer_id=%d, consultant_id=%d",
		result.ID, customerID, req.ConsultantID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
