package get_customer_tickets

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jw-park/petkinder-backend/internal/api/handlers"
	"github.com/jw-park/petkinder-backend/internal/api/middleware"
	ticketsService "github.com/jw-park/petkinder-backend/internal/service/tickets"
)

const (
	msgInvalidCustomerID = "invalid customer id"
	msgCustomerNotFound  = "customer not found"
)

type Handler struct {
	service TicketService
	logger  Logger
}

func NewHandler(service TicketService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/customers/{customerId}/tickets
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeUnauthorized, "missing identity")
		return
	}

	customerID, err := strconv.ParseInt(mux.Vars(r)["customerId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	result, err := h.service.ListBalances(r.Context(), claims.KindergartenID, customerID)
	if err != nil {
		switch {
		case errors.Is(err, ticketsService.ErrCustomerNotFound):
			handlers.RespondNotFound(w, msgCustomerNotFound)
		default:
			h.logger.Error("GET /customers/%d/tickets - Failed: %v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
