package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lyle8341/flake/internal/codec"
	idsvc "github.com/lyle8341/flake/internal/services/ids"
)

// IDsController serves id generation, decoding and inspection.
type IDsController struct {
	svc *idsvc.Service
}

// NewIDsController creates a new ids controller.
func NewIDsController(svc *idsvc.Service) *IDsController {
	return &IDsController{svc: svc}
}

// RegisterRoutes registers:
//   - GET|POST /v1/ids?count=N&format=F
//   - GET /v1/ids/{id}?format=F
//   - POST /v1/ids/inspect
//
// Ids in responses are JSON strings in every format. Request bodies accept
// either strings or numbers.
func (c *IDsController) RegisterRoutes(r chi.Router) {
	r.Route("/v1/ids", func(r chi.Router) {
		r.Get("/", c.handleGenerate)
		r.Post("/", c.handleGenerate)
		r.Post("/inspect", c.handleInspect)
		r.Get("/{id}", c.handleDecode)
	})
}

// handleGenerate mints count ids. Generation is not idempotent, so both GET
// and POST are accepted for convenience.
func (c *IDsController) handleGenerate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	count, err := parseCount(q.Get("count"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	f, err := codec.ParseFormat(q.Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ids, err := c.svc.Generate(r.Context(), count)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, generateResp{IDs: formatIDs(ids, f)})
}

// handleDecode returns the fields of the id in the path.
func (c *IDsController) handleDecode(w http.ResponseWriter, r *http.Request) {
	f, err := codec.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := codec.Decode(chi.URLParam(r, "id"), f)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := c.svc.Decode(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, d)
}

// handleInspect decodes the posted ids and returns those matching filter.
func (c *IDsController) handleInspect(w http.ResponseWriter, r *http.Request) {
	var req inspectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.IDs) > idsvc.MaxBatch {
		writeError(w, http.StatusBadRequest, "too many ids")
		return
	}
	f, err := codec.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ids := make([]int64, 0, len(req.IDs))
	for _, t := range req.IDs {
		id, err := codec.Decode(string(t), f)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		ids = append(ids, id)
	}
	matches, err := c.svc.Inspect(r.Context(), ids, req.Filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, inspectResp{Matches: matches, Count: len(matches)})
}
