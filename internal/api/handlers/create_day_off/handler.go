package create_day_off

import (
	"errors"
	"net/http"

	"github.com/jw-park/petkinder-backend/internal/api/handlers"
	"github.com/jw-park/petkinder-backend/internal/api/middleware"
	dayoffsService "github.com/jw-park/petkinder-backend/internal/service/dayoffs"
	"github.com/jw-park/petkinder-backend/internal/service/dayoffs/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgDuplicateDayOff    = "day off already registered for this date"
)

type Handler struct {
	service DayOffService
	logger  Logger
}

func NewHandler(service DayOffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/day-offs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeUnauthorized, "missing identity")
		return
	}

	var req models.CreateDayOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /day-offs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), claims.KindergartenID, &req)
	if err != nil {
		switch {
		case errors.Is(err, dayoffsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, dayoffsService.ErrDuplicateDayOff):
			handlers.RespondConflict(w, handlers.CodeAlreadyExists, msgDuplicateDayOff)

		default:
			h.logger.Error("POST /day-offs - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /day-offs - Created day off id=%d date=%s", result.ID, result.DayOffAt)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
