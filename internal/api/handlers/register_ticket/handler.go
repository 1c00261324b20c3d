package register_ticket

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jw-park/petkinder-backend/internal/api/handlers"
	"github.com/jw-park/petkinder-backend/internal/api/middleware"
	ticketsService "github.com/jw-park/petkinder-backend/internal/service/tickets"
	"github.com/jw-park/petkinder-backend/internal/service/tickets/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidCustomerID  = "invalid customer id"
	msgCustomerNotFound   = "customer not found"
	msgTicketNotFound     = "ticket not found"
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

// Handle POST /api/v1/customers/{customerId}/tickets
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

	var req models.RegisterTicketRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /customers/%d/tickets - Invalid request body: %v", customerID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Register(r.Context(), claims.KindergartenID, customerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ticketsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, ticketsService.ErrCustomerNotFound):
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, ticketsService.ErrTicketNotFound):
			handlers.RespondError(w, http.StatusNotFound, handlers.CodeNotFoundTicket, msgTicketNotFound)

		default:
			h.logger.Error("POST /customers/%d/tickets - Failed: %v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /customers/%d/tickets - Registered customer ticket id=%d", customerID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
