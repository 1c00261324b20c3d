package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jw-park/petkinder-backend/internal/api/handlers"
	"github.com/jw-park/petkinder-backend/internal/api/middleware"
	"github.com/jw-park/petkinder-backend/internal/domain"
	getAvailableDates "github.com/jw-park/petkinder-backend/internal/usecase/get_available_dates"
)

const (
	msgInvalidTicketID   = "invalid ticket id"
	msgInvalidCustomerID = "customerId query parameter is required"
	msgTicketNotFound    = "ticket not found"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// AvailableDatesResponse is the HTTP response model.
type AvailableDatesResponse struct {
	TicketID int64    `json:"ticketId"`
	Dates    []string `json:"dates"`
}

// Handle GET /api/v1/tickets/{ticketId}/available-dates?customerId=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeUnauthorized, "missing identity")
		return
	}

	ticketID, err := strconv.ParseInt(mux.Vars(r)["ticketId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTicketID)
		return
	}

	customerID, err := strconv.ParseInt(r.URL.Query().Get("customerId"), 10, 64)
	if err != nil || customerID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableDates.Request{
		KindergartenID: claims.KindergartenID,
		CustomerID:     customerID,
		TicketID:       ticketID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailableDates.ErrKindergartenNotFound):
			handlers.RespondNotFound(w, "kindergarten not found")

		case errors.Is(err, getAvailableDates.ErrTicketNotFound):
			handlers.RespondError(w, http.StatusNotFound, handlers.CodeNotFoundTicket, msgTicketNotFound)

		default:
			h.logger.Error("GET /tickets/%d/available-dates - Failed: %v", ticketID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	dates := make([]string, len(result.Dates))
	for i, d := range result.Dates {
		dates[i] = d.Format(domain.DateFormat)
	}

	handlers.RespondJSON(w, http.StatusOK, AvailableDatesResponse{
		TicketID: result.TicketID,
		Dates:    dates,
	})
}
