package list_tickets

import (
	"net/http"

	"github.com/jw-park/petkinder-backend/internal/api/handlers"
	"github.com/jw-park/petkinder-backend/internal/api/middleware"
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

// Handle GET /api/v1/tickets
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeUnauthorized, "missing identity")
		return
	}

	result, err := h.service.ListProducts(r.Context(), claims.KindergartenID)
	if err != nil {
		h.logger.Error("GET /tickets - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"tickets": result})
}
