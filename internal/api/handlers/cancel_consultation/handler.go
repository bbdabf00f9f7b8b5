package cancel_consultation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HCP-ConsultationService/internal/api/handlers"
	"github.com/m04kA/HCP-ConsultationService/internal/api/middleware"
	"github.com/m04kA/HCP-ConsultationService/internal/service/consultations"
)

const (
	msgInvalidConsultationID = "некорректный ID консультации"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgReasonTooLong         = "слишком длинная причина отмены"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgNotFound              = "консультация не найдена"
	msgForbidden             = "отменить могут только участники консультации"
	msgCannotCancel          = "консультация не может быть отменена"
)

type Handler struct {
	service ConsultationService
	logger  Logger
}

func NewHandler(service ConsultationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/consultations/{consultationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	consultationIDStr := vars["consultationId"]

	consultationID, err := strconv.ParseInt(consultationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /consultations/{id}/cancel - Invalid consultation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultationID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /consultations/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело с причиной отмены опционально
	var req CancelConsultationRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /consultations/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	err = h.service.Cancel(r.Context(), consultationID, req.ToServiceRequest(callerID))
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrConsultationNotFound):
			h.logger.Warn("PATCH /consultations/{id}/cancel - Not found: consultation_id=%d", consultationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, consultations.ErrInvalidTransition):
			h.logger.Warn("PATCH /consultations/{id}/cancel - Invalid transition: consultation_id=%d", consultationID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, consultations.ErrNotAuthorizedToCancel):
			h.logger.Warn("PATCH /consultations/{id}/cancel - Access denied: consultation_id=%d, user_id=%d",
				consultationID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, consultations.ErrInvalidInput):
			h.logger.Warn("PATCH /consultations/{id}/cancel - Reason too long: consultation_id=%d", consultationID)
			handlers.RespondBadRequest(w, msgReasonTooLong)

		default:
			h.logger.Error("PATCH /consultations/{id}/cancel - Failed to cancel: consultation_id=%d, error=%v",
				consultationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /consultations/{id}/cancel - Consultation cancelled: consultation_id=%d, user_id=%d",
		consultationID, callerID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
