// Package web serves the timeline engine over HTTP. Every request is
// stateless: expansion, keyword and range travel in the query string.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/chart"
	"github.com/alexanderramin/gantt/internal/importer"
	"github.com/alexanderramin/gantt/internal/service"
	"github.com/alexanderramin/gantt/internal/timeline"
)

// maxImportBytes bounds the size of an uploaded payload.
const maxImportBytes = 16 << 20

const codeBadRequest = "BAD_REQUEST"

// Handlers serves the API routes.
type Handlers struct {
	Timeline app.TimelineUseCase
	Stats    app.StatsUseCase
	Import   app.ImportUseCase
	Export   app.ExportUseCase
	Logger   *slog.Logger
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Healthz handles GET /healthz.
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetTimeline handles GET /api/timeline.
func (h *Handlers) GetTimeline(w http.ResponseWriter, r *http.Request) {
	req, terr := parseTimelineQuery(r)
	if terr != nil {
		writeError(w, http.StatusBadRequest, string(terr.Code), terr.Message)
		return
	}
	resp, err := h.Timeline.BuildTimeline(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetTimelineSVG handles GET /api/timeline.svg. It takes the same query as
// GetTimeline plus optional width and labelWidth in pixels.
func (h *Handlers) GetTimelineSVG(w http.ResponseWriter, r *http.Request) {
	req, terr := parseTimelineQuery(r)
	if terr != nil {
		writeError(w, http.StatusBadRequest, string(terr.Code), terr.Message)
		return
	}
	var opts chart.Options
	var err error
	if opts.ChartWidth, err = optionalInt(r.URL.Query(), "width"); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	if opts.LabelWidth, err = optionalInt(r.URL.Query(), "labelWidth"); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	resp, err := h.Timeline.BuildTimeline(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if err := chart.WriteSVG(w, resp, opts); err != nil && h.Logger != nil {
		h.Logger.WarnContext(r.Context(), "svg write failed", "error", err)
	}
}

// GetColumns handles GET /api/columns. It needs no stored data.
func (h *Handlers) GetColumns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	g, terr := parseGranularity(q.Get("granularity"))
	if terr != nil {
		writeError(w, http.StatusBadRequest, string(terr.Code), terr.Message)
		return
	}
	from, terr := requiredDate(q, "from")
	if terr != nil {
		writeError(w, http.StatusBadRequest, string(terr.Code), terr.Message)
		return
	}
	to, terr := requiredDate(q, "to")
	if terr != nil {
		writeError(w, http.StatusBadRequest, string(terr.Code), terr.Message)
		return
	}
	cols, err := timeline.GenerateColumnsStrict(g, from, to)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"granularity": g, "columns": cols})
}

// GetStats handles GET /api/stats.
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	now, terr := optionalDate(q, "now")
	if terr != nil {
		writeError(w, http.StatusBadRequest, string(terr.Code), terr.Message)
		return
	}
	byProject, err := optionalBool(q, "byProject")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	resp, err := h.Stats.GetStats(r.Context(), app.StatsRequest{Now: now, ByProject: byProject})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetProjectStats handles GET /api/projects/{projectID}/stats.
func (h *Handlers) GetProjectStats(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectID"]
	now, terr := optionalDate(r.URL.Query(), "now")
	if terr != nil {
		writeError(w, http.StatusBadRequest, string(terr.Code), terr.Message)
		return
	}
	resp, err := h.Stats.GetStats(r.Context(), app.StatsRequest{Now: now, ByProject: true})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	for _, p := range resp.Projects {
		if p.ProjectID != "" && (p.ProjectID == projectID || strings.EqualFold(p.ProjectKey, projectID)) {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeError(w, http.StatusNotFound, "NOT_FOUND", "project "+strconv.Quote(projectID)+" not found")
}

// GetExport handles GET /api/export.
func (h *Handlers) GetExport(w http.ResponseWriter, r *http.Request) {
	p, err := h.Export.Export(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// PostImport handles POST /api/import. The body replaces all stored data.
func (h *Handlers) PostImport(w http.ResponseWriter, r *http.Request) {
	p, err := importer.Decode(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	result, err := h.Import.ImportPayload(r.Context(), p)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// fail maps service errors onto status codes; anything unexpected is logged
// and reported as 500.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	var terr *app.TimelineError
	switch {
	case errors.As(err, &terr):
		writeError(w, http.StatusBadRequest, string(terr.Code), terr.Message)
	case errors.Is(err, timeline.ErrUnknownGranularity), errors.Is(err, timeline.ErrInvalidRange),
		errors.Is(err, timeline.ErrTooManyColumns):
		terr = timelineErrorFor(err)
		writeError(w, http.StatusBadRequest, string(terr.Code), terr.Message)
	case errors.Is(err, service.ErrInvalidPayload):
		writeError(w, http.StatusUnprocessableEntity, "INVALID_PAYLOAD", err.Error())
	default:
		if h.Logger != nil {
			h.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		}
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

func timelineErrorFor(err error) *app.TimelineError {
	code := app.TimelineErrInvalidRange
	switch {
	case errors.Is(err, timeline.ErrUnknownGranularity):
		code = app.TimelineErrInvalidGranularity
	case errors.Is(err, timeline.ErrTooManyColumns):
		code = app.TimelineErrTooManyColumns
	}
	return &app.TimelineError{Code: code, Message: err.Error()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}
