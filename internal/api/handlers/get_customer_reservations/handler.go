package get_customer_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/jw-park/petkinder-backend/internal/api/handlers"
	"github.com/jw-park/petkinder-backend/internal/domain"
	reservationsService "github.com/jw-park/petkinder-backend/internal/service/reservations"
	"github.com/jw-park/petkinder-backend/internal/service/reservations/models"
)

const (
	msgInvalidCustomerID = "invalid customer id"
	msgInvalidDateFilter = "invalid date filter, expected YYYY-MM-DD"
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

// Handle GET /api/v1/customers/{customerId}/reservations
// Optional query: status, from, to, includeCanceled.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(mux.Vars(r)["customerId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	req := &models.ListReservationsRequest{CustomerID: customerID}

	query := r.URL.Query()
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if includeCanceled := query.Get("includeCanceled"); includeCanceled == "true" {
		req.IncludeCanceled = true
	}
	if from := query.Get("from"); from != "" {
		parsed, err := time.Parse(domain.DateFormat, from)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDateFilter)
			return
		}
		req.From = &parsed
	}
	if to := query.Get("to"); to != "" {
		parsed, err := time.Parse(domain.DateFormat, to)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDateFilter)
			return
		}
		req.To = &parsed
	}

	result, err := h.service.ListByCustomer(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /customers/%d/reservations - Failed: %v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
