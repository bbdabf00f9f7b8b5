package get_my_consultations

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

// Handle GET /api/v1/users/me/consultations?status=pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/me/consultations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.ListRequest{CallerID: callerID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetMyConsultations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrUserNotFound):
			h.logger.Warn("GET /users/me/consultations - User not found: user_id=%d", callerID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, consultations.ErrInvalidInput):
			h.logger.Warn("GET /users/me/consultations - Invalid status: user_id=%d", callerID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/me/consultations - Failed to get consultations: user_id=%d, error=%v",
				callerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/me/consultations - Retrieved %d consultations: user_id=%d",
		len(result.Consultations), callerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
