package get_consultant_consultations

import (
	"errors"
	"net/http"

	"github.com/m04kA/HCP-ConsultationService/internal/api/handlers"
	"github.com/m04kA/HCP-ConsultationService/internal/api/middleware"
	"github.com/m04kA/HCP-ConsultationService/internal/service/consultations"
	"github.com/m04kA/HCP-ConsultationService/internal/service/consultations/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgUserNotFound  = "пользователь не найден"
	msgForbidden     = "доступно только консультантам"
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

// Handle GET /api/v1/consultants/me/consultations?status=confirmed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /consultants/me/consultations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.ListRequest{CallerID: callerID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetConsultantConsultations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrUserNotFound):
			h.logger.Warn("GET /consultants/me/consultations - User not found: user_id=%d", callerID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, consultations.ErrAccessDenied):
			h.logger.Warn("GET /consultants/me/consultations - Not a consultant: user_id=%d", callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, consultations.ErrInvalidInput):
			h.logger.Warn("GET /consultants/me/consultations - Invalid status: user_id=%d", callerID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /consultants/me/consultations - Failed to get consultations: user_id=%d, error=%v",
				callerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultants/me/consultations - Retrieved %d consultations: user_id=%d",
		len(result.Consultations), callerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
