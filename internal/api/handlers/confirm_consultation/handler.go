package confirm_consultation

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
	msgMissingUserID         = "отсутствует ID пользователя"
	msgNotFound              = "консультация не найдена"
	msgForbidden             = "подтвердить может только назначенный консультант"
	msgCannotConfirm         = "консультация не может быть подтверждена"
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

// Handle PATCH /api/v1/consultations/{consultationId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	consultationIDStr := vars["consultationId"]

	consultationID, err := strconv.ParseInt(consultationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /consultations/{id}/confirm - Invalid consultation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultationID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /consultations/{id}/confirm - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Confirm(r.Context(), consultationID, callerID)
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrConsultationNotFound):
			h.logger.Warn("PATCH /consultations/{id}/confirm - Not found: consultation_id=%d", consultationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, consultations.ErrInvalidTransition):
			h.logger.Warn("PATCH /consultations/{id}/confirm - Invalid transition: consultation_id=%d", consultationID)
			handlers.RespondConflict(w, msgCannotConfirm)

		case errors.Is(err, consultations.ErrNotAuthorizedToConfirm):
			h.logger.Warn("PATCH /consultations/{id}/confirm - Access denied: consultation_id=%d, user_id=%d",
				consultationID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /consultations/{id}/confirm - Failed to confirm: consultation_id=%d, error=%v",
				consultationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /consultations/{id}/confirm - Consultation confirmed: consultation_id=%d, user_id=%d",
		consultationID, callerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
