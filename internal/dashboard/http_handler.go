package dashboard

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"shelfthis/internal/history"
	"shelfthis/internal/httpx"
)

type HTTPHandler struct {
	svc      *Service
	importer ImportRunner
	logger   *slog.Logger
}

// NewHTTPHandler wires the dashboard routes. importer may be nil when no
// database is configured.
func NewHTTPHandler(svc *Service, importer ImportRunner, logger *slog.Logger) *HTTPHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPHandler{svc: svc, importer: importer, logger: logger}
}

// Register mounts the public routes on mux and the import job behind guard.
func (h *HTTPHandler) Register(mux *http.ServeMux, guard func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /v1/dashboard", h.Dashboard)
	mux.HandleFunc("GET /v1/books", h.Books)
	mux.HandleFunc("GET /v1/covers/{isbn}", h.Cover)
	mux.Handle("POST /internal/jobs/import", guard(http.HandlerFunc(h.Import)))
}

// Dashboard handles GET /v1/dashboard
// @Summary Reading dashboard
// @Description Totals, charts and cover shelves for a completion year
// @Tags dashboard
// @Produce json
// @Param year query int false "Completion year, omitted or 'all' for every year"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/dashboard [get]
func (h *HTTPHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	year, ok := h.year(w, r)
	if !ok {
		return
	}

	d, err := h.svc.Build(r.Context(), year)
	if err != nil {
		h.internalError(w, r, "build dashboard", err)
		return
	}
	httpx.JSONSuccess(w, r, d, nil)
}

// Books handles GET /v1/books
func (h *HTTPHandler) Books(w http.ResponseWriter, r *http.Request) {
	year, ok := h.year(w, r)
	if !ok {
		return
	}

	rows, err := h.svc.Books(r.Context(), year)
	if err != nil {
		h.internalError(w, r, "list books", err)
		return
	}
	httpx.JSONSuccess(w, r, rows, map[string]any{"total": len(rows)})
}

// Cover handles GET /v1/covers/{isbn}
func (h *HTTPHandler) Cover(w http.ResponseWriter, r *http.Request) {
	isbn := strings.TrimSpace(r.PathValue("isbn"))
	if isbn == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "isbn is required", nil)
		return
	}
	httpx.JSONSuccess(w, r, h.svc.Cover(r.Context(), isbn), nil)
}

// Import handles POST /internal/jobs/import
// @Summary Import the reading history export
// @Description Copy the configured CSV export into Postgres
// @Tags internal
// @Produce json
// @Param X-Internal-Secret header string true "Internal secret for authentication"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 503 {object} httpx.ErrorResponse
// @Router /internal/jobs/import [post]
func (h *HTTPHandler) Import(w http.ResponseWriter, r *http.Request) {
	if h.importer == nil {
		httpx.JSONError(w, r, http.StatusServiceUnavailable, "DATABASE_NOT_CONFIGURED", history.ErrNoDatabase.Error(), nil)
		return
	}

	run, err := h.importer.Run(r.Context())
	switch {
	case errors.Is(err, history.ErrNoDatabase):
		httpx.JSONError(w, r, http.StatusServiceUnavailable, "DATABASE_NOT_CONFIGURED", err.Error(), nil)
		return
	case err != nil:
		h.logger.Error("import failed", "request_id", httpx.RequestIDFrom(r), "error", err)
		httpx.JSONError(w, r, http.StatusInternalServerError, "IMPORT_FAILED", err.Error(), nil)
		return
	}

	h.svc.Refresh()
	httpx.JSONSuccess(w, r, run, nil)
}

func (h *HTTPHandler) year(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, err := ParseYear(r.URL.Query().Get("year"))
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameter", []httpx.ErrorDetail{
			{Field: "year", Message: "must be a positive year or 'all'"},
		})
		return 0, false
	}
	return year, true
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error(op+" failed", "request_id", httpx.RequestIDFrom(r), "error", err)
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

// ParseYear reads a year selection. Empty and "all" select every year.
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return 0, nil
	}
	y, err := strconv.Atoi(s)
	if err != nil || y <= 0 {
		return 0, ErrInvalidYear
	}
	return y, nil
}
