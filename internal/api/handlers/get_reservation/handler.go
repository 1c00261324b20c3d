package get_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jw-park/petkinder-backend/internal/api/handlers"
	reservationsService "github.com/jw-park/petkinder-backend/internal/service/reservations"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgInvalidCustomerID    = "customerId query parameter is required"
	msgReservationNotFound  = "reservation not found"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/{reservationId}?customerId=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	customerID, err := strconv.ParseInt(r.URL.Query().Get("customerId"), 10, 64)
	if err != nil || customerID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	result, err := h.service.GetByID(r.Context(), customerID, reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)
		default:
			h.logger.Error("GET /reservations/%d - Failed: %v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
