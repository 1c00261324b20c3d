package import_customers

import (
	"errors"
	"net/http"

	"github.com/jw-park/petkinder-backend/internal/api/handlers"
	"github.com/jw-park/petkinder-backend/internal/api/middleware"
	customersService "github.com/jw-park/petkinder-backend/internal/service/customers"
)

// maxImportSize caps the CSV upload at 5 MiB.
const maxImportSize = 5 << 20

const (
	msgInvalidFile = "import file must be multipart/form-data with a \"file\" field or a text/csv body"
	msgEmptyImport = "import file has no rows"
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

// Handle POST /api/v1/customers/import
// Accepts either a multipart upload ("file" field) or a raw CSV body.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeUnauthorized, "missing identity")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)

	reader := r.Body
	if err := r.ParseMultipartForm(maxImportSize); err == nil {
		file, _, err := r.FormFile("file")
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFile)
			return
		}
		defer file.Close()
		reader = file
	}

	result, err := h.service.ImportCSV(r.Context(), claims.KindergartenID, reader)
	if err != nil {
		switch {
		case errors.Is(err, customersService.ErrEmptyImport):
			handlers.RespondBadRequest(w, msgEmptyImport)

		case errors.Is(err, customersService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /customers/import - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /customers/import - Batch %s: imported=%d, skipped=%d",
		result.BatchID, result.Imported, result.Skipped)
	handlers.RespondJSON(w, http.StatusOK, result)
}
