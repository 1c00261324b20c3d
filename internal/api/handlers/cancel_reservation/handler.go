package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jw-park/petkinder-backend/internal/api/handlers"
	cancelReservation "github.com/jw-park/petkinder-backend/internal/usecase/cancel_reservation"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidReservationID = "invalid reservation id"
	msgReservationNotFound  = "reservation not found"
	msgAlreadyCanceled      = "reservation is already canceled"
	msgNotChainRoot         = "hotel stays are canceled through their first night"
	msgTicketConflict       = "ticket balance changed, please retry"
)

type Handler struct {
	useCase CancelReservationUseCase
	logger  Logger
}

func NewHandler(useCase CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/%d/cancel - Invalid request body: %v", reservationID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelReservation.Request{
		CustomerID:    req.CustomerID,
		ReservationID: reservationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, cancelReservation.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, cancelReservation.ErrAlreadyCanceled):
			handlers.RespondConflict(w, handlers.CodeAlreadyExists, msgAlreadyCanceled)

		case errors.Is(err, cancelReservation.ErrNotChainRoot):
			handlers.RespondBadRequest(w, msgNotChainRoot)

		case errors.Is(err, cancelReservation.ErrTicketConflict):
			handlers.RespondConflict(w, handlers.CodeConflict, msgTicketConflict)

		default:
			h.logger.Error("PATCH /reservations/%d/cancel - Failed: customer=%d, error=%v",
				reservationID, req.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/%d/cancel - Canceled %d row(s) for customer=%d",
		reservationID, len(result.CanceledIDs), req.CustomerID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
