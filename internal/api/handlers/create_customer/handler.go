package create_customer

import (
	"errors"
	"net/http"

	"github.com/jw-park/petkinder-backend/internal/api/handlers"
	"github.com/jw-park/petkinder-backend/internal/api/middleware"
	customersService "github.com/jw-park/petkinder-backend/internal/service/customers"
	"github.com/jw-park/petkinder-backend/internal/service/customers/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
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

// Handle POST /api/v1/customers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeUnauthorized, "missing identity")
		return
	}

	var req models.CreateCustomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /customers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), claims.KindergartenID, &req)
	if err != nil {
		switch {
		case errors.Is(err, customersService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, customersService.ErrDuplicatePhoneNumber):
			handlers.RespondConflict(w, handlers.CodeAlreadyExists, msgDuplicatePhone)

		case errors.Is(err, customersService.ErrDuplicatePetName):
			handlers.RespondConflict(w, handlers.CodeAlreadyExists, msgDuplicatePetName)

		default:
			h.logger.Error("POST /customers - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /customers - Customer created: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
