package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/HCP-ConsultationService/internal/api/handlers"
	"github.com/m04kA/HCP-ConsultationService/internal/domain"
	getAvailableSlots "github.com/m04kA/HCP-ConsultationService/internal/usecase/get_available_slots"
)

const (
	msgInvalidConsultantID   = "некорректный ID консультанта"
	msgMissingDate           = "параметр date обязателен"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPastDate              = "дата уже прошла"
	msgConsultantNotFound    = "консультант не найден"
	msgNotAConsultant        = "аккаунт не является консультантом"
	msgConsultantUnavailable = "консультант временно недоступен"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/consultants/{consultantId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	consultantIDStr := vars["consultantId"]

	consultantID, err := strconv.ParseInt(consultantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/available-slots - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /consultants/{id}/available-slots - Missing date parameter: consultant_id=%d", consultantID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		ConsultantID: consultantID,
		Date:         date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrPastDate):
			h.logger.Warn("GET /consultants/{id}/available-slots - Past date: consultant_id=%d, date=%s", consultantID, dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrConsultantNotFound):
			h.logger.Warn("GET /consultants/{id}/available-slots - Consultant not found: consultant_id=%d", consultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, getAvailableSlots.ErrNotAConsultant):
			h.logger.Warn("GET /consultants/{id}/available-slots - Not a consultant: consultant_id=%d", consultantID)
			handlers.RespondNotFound(w, msgNotAConsultant)

		case errors.Is(err, getAvailableSlots.ErrConsultantUnavailable):
			h.logger.Warn("GET /consultants/{id}/available-slots - Consultant unavailable: consultant_id=%d", consultantID)
			handlers.RespondError(w, http.StatusConflict, msgConsultantUnavailable)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /consultants/{id}/available-slots - Invalid input: consultant_id=%d, error=%v", consultantID, err)
			handlers.RespondBadRequest(w, msgInvalidConsultantID)

		default:
			h.logger.Error("GET /consultants/{id}/available-slots - Failed to get slots: consultant_id=%d, error=%v", consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultants/{id}/available-slots - Slots retrieved: consultant_id=%d, date=%s", consultantID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
