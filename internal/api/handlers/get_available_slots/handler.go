package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jw-park/petkinder-backend/internal/api/handlers"
	"github.com/jw-park/petkinder-backend/internal/api/middleware"
	getAvailableSlots "github.com/jw-park/petkinder-backend/internal/usecase/get_available_slots"
)

const (
	msgInvalidUsageTime     = "usageTime query parameter must be a positive number of hours"
	msgKindergartenNotFound = "kindergarten not found"
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

// AvailableSlotsResponse is the HTTP response model.
type AvailableSlotsResponse struct {
	UsageTimeHours int      `json:"usageTimeHours"`
	Slots          []string `json:"slots"`
}

// Handle GET /api/v1/available-times?usageTime=H
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeUnauthorized, "missing identity")
		return
	}

	usageTime, err := strconv.Atoi(r.URL.Query().Get("usageTime"))
	if err != nil || usageTime <= 0 {
		handlers.RespondBadRequest(w, msgInvalidUsageTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		KindergartenID: claims.KindergartenID,
		UsageTimeHours: usageTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailableSlots.ErrKindergartenNotFound):
			handlers.RespondNotFound(w, msgKindergartenNotFound)

		default:
			h.logger.Error("GET /available-times - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	slots := make([]string, len(result.Slots))
	for i, s := range result.Slots {
		slots[i] = s.String()
	}

	handlers.RespondJSON(w, http.StatusOK, AvailableSlotsResponse{
		UsageTimeHours: result.UsageTimeHours,
		Slots:          slots,
	})
}
