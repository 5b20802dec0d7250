package handler

import (
	"context"
	"net/http"

	"github.com/forgo/library/internal/model"
	"github.com/forgo/library/internal/service"
)

// IndexService produces the dashboard
type IndexService interface {
	Index(ctx context.Context) (*service.Outcome, error)
}

// IndexHandler serves the site root and the dashboard
type IndexHandler struct {
	svc  IndexService
	resp *Responder
}

// NewIndexHandler creates a new index handler
func NewIndexHandler(svc IndexService, resp *Responder) *IndexHandler {
	return &IndexHandler{svc: svc, resp: resp}
}

// Root handles GET / by sending the browser to the catalog
func (h *IndexHandler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/catalog", http.StatusFound)
}

// Index handles GET /catalog
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Index(r.Context())
	if err != nil {
		h.resp.WriteServiceError(w, r, err, "index")
		return
	}
	h.resp.WriteOutcome(w, r, out)
}

// NotFound renders the error page for unknown paths
func (h *IndexHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.resp.WriteError(w, r, model.NewNotFoundError("Page"))
}
