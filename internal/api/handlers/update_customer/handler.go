package update_customer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jw-park/petkinder-backend/internal/api/handlers"
	"github.com/jw-park/petkinder-backend/internal/api/middleware"
	customersService "github.com/jw-park/petkinder-backend/internal/service/customers"
	"github.com/jw-park/petkinder-backend/internal/service/customers/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidCustomerID  = "invalid customer id"
	msgCustomerNotFound   = "customer not found"
	msgPetNotFound        = "pet not found"
	msgDuplicatePhone     = "a customer with this phone number already exists"
	msgDuplicatePetName   = "the customer already has a pet with this name"
)

type Handler struct {
	service CustomerService
	logger  Logger
}

func NewHandler(service CustomerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/customers/{customerId}
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

	var req models.UpdateCustomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /customers/%d - Invalid request body: %v", customerID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), claims.KindergartenID, customerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, customersService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, customersService.ErrCustomerNotFound):
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, customersService.ErrPetNotFound):
			handlers.RespondNotFound(w, msgPetNotFound)

		case errors.Is(err, customersService.ErrDuplicatePhoneNumber):
			handlers.RespondConflict(w, handlers.CodeAlreadyExists, msgDuplicatePhone)

		case errors.Is(err, customersService.ErrDuplicatePetName):
			handlers.RespondConflict(w, handlers.CodeAlreadyExists, msgDuplicatePetName)

		default:
			h.logger.Error("PUT /customers/%d - Failed: %v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /customers/%d - Customer updated", customerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
