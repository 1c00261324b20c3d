package delete_day_off

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jw-park/petkinder-backend/internal/api/handlers"
	"github.com/jw-park/petkinder-backend/internal/api/middleware"
	dayoffsService "github.com/jw-park/petkinder-backend/internal/service/dayoffs"
)

const (
	msgInvalidDayOffID = "invalid day off id"
	msgDayOffNotFound  = "day off not found"
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

// Handle DELETE /api/v1/day-offs/{dayOffId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeUnauthorized, "missing identity")
		return
	}

	dayOffID, err := strconv.ParseInt(mux.Vars(r)["dayOffId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDayOffID)
		return
	}

	if err := h.service.Delete(r.Context(), claims.KindergartenID, dayOffID); err != nil {
		switch {
		case errors.Is(err, dayoffsService.ErrDayOffNotFound):
			handlers.RespondNotFound(w, msgDayOffNotFound)

		default:
			h.logger.Error("DELETE /day-offs/%d - Failed: %v", dayOffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /day-offs/%d - Deleted", dayOffID)
	handlers.RespondNoContent(w)
}
