package get_consultations_by_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/HCP-ConsultationService/internal/api/handlers"
	"github.com/m04kA/HCP-ConsultationService/internal/api/middleware"
	"github.com/m04kA/HCP-ConsultationService/internal/service/consultations"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgUserNotFound  = "пользователь не найден"
	msgForbidden     = "доступно только сотрудникам"
	msgInvalidStatus = "некорректный статус"
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

// Handle GET /api/v1/consultations?status=pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /consultations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}

	result, err := h.service.GetByStatus(r.Context(), callerID, status)
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrUserNotFound):
			h.logger.Warn("GET /consultations - User not found: user_id=%d", callerID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, consultations.ErrAccessDenied):
			h.logger.Warn("GET /consultations - Access denied: user_id=%d", callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, consultations.ErrInvalidInput):
			h.logger.Warn("GET /consultations - Invalid status: user_id=%d", callerID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /consultations - Failed to get consultations: user_id=%d, error=%v",
				callerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultations - Retrieved %d consultations: user_id=%d",
		len(result.Consultations), callerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
