package create_reservation

import (
	"errors"
	"net/http"

	"github.com/jw-park/petkinder-backend/internal/api/handlers"
	"github.com/jw-park/petkinder-backend/internal/api/middleware"
	createReservation "github.com/jw-park/petkinder-backend/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody    = "invalid request body"
	msgInvalidDate           = "invalid date format, expected YYYY-MM-DD"
	msgCustomerNotFound      = "customer not found"
	msgPetNotFound           = "pet not found"
	msgTicketNotFound        = "ticket not found"
	msgNoUsableTicket        = "no usable ticket for this reservation"
	msgAlreadyReserved       = "pet already has a reservation on this date"
	msgInvalidReservedAt     = "date is not available for reservation"
	msgInvalidAttendanceTime = "attendance time is not an available slot"
	msgInvalidEndAt          = "invalid checkout date"
	msgDailyLimitExceeded    = "daily pet limit reached for this date"
	msgTicketConflict        = "ticket balance changed, please retry"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeUnauthorized, "missing identity")
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(claims.KindergartenID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createReservation.ErrKindergartenNotFound),
			errors.Is(err, createReservation.ErrCustomerNotFound):
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createReservation.ErrPetNotFound):
			handlers.RespondNotFound(w, msgPetNotFound)

		case errors.Is(err, createReservation.ErrTicketNotFound):
			handlers.RespondError(w, http.StatusNotFound, handlers.CodeNotFoundTicket, msgTicketNotFound)

		case errors.Is(err, createReservation.ErrNoUsableTicket):
			handlers.RespondError(w, http.StatusNotFound, handlers.CodeNotFoundTicket, msgNoUsableTicket)

		case errors.Is(err, createReservation.ErrAlreadyReserved):
			handlers.RespondConflict(w, handlers.CodeAlreadyExists, msgAlreadyReserved)

		case errors.Is(err, createReservation.ErrInvalidReservedAt):
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidReservedAt, msgInvalidReservedAt)

		case errors.Is(err, createReservation.ErrInvalidAttendanceTime):
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidAttendanceTime, msgInvalidAttendanceTime)

		case errors.Is(err, createReservation.ErrInvalidEndAt):
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidEndAt, msgInvalidEndAt)

		case errors.Is(err, createReservation.ErrDailyLimitExceeded):
			handlers.RespondConflict(w, handlers.CodeLimitExceeded, msgDailyLimitExceeded)

		case errors.Is(err, createReservation.ErrTicketConflict):
			handlers.RespondConflict(w, handlers.CodeConflict, msgTicketConflict)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: customer=%d, error=%v",
				req.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%d, customer=%d", result.ID, req.CustomerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
