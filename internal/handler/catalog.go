package handler

import (
	"context"
	"net/http"

	"github.com/forgo/library/internal/model"
	"github.com/forgo/library/internal/service"
	"github.com/forgo/library/internal/validation"
)

// CatalogService is the set of form flows every catalog entity offers
type CatalogService interface {
	List(ctx context.Context) (*service.Outcome, error)
	Detail(ctx context.Context, id string) (*service.Outcome, error)
	CreateForm(ctx context.Context) (*service.Outcome, error)
	Create(ctx context.Context, in validation.Input) (*service.Outcome, error)
	UpdateForm(ctx context.Context, id string) (*service.Outcome, error)
	Update(ctx context.Context, id string, in validation.Input) (*service.Outcome, error)
	DeleteForm(ctx context.Context, id string) (*service.Outcome, error)
	Delete(ctx context.Context, id string) (*service.Outcome, error)
}

// CatalogHandler serves the pages of one entity under /catalog/{entity}
type CatalogHandler struct {
	entity string
	svc    CatalogService
	resp   *Responder
}

// NewCatalogHandler creates a handler for entity, e.g. "author"
func NewCatalogHandler(entity string, svc CatalogService, resp *Responder) *CatalogHandler {
	return &CatalogHandler{entity: entity, svc: svc, resp: resp}
}

// Register adds the entity routes to mux
func (h *CatalogHandler) Register(mux *http.ServeMux) {
	base := "/catalog/" + h.entity

	mux.HandleFunc("GET "+base+"s", h.List)
	mux.HandleFunc("GET "+base+"/create", h.CreateForm)
	mux.HandleFunc("POST "+base+"/create", h.Create)
	mux.HandleFunc("GET "+base+"/{id}", h.Detail)
	mux.HandleFunc("GET "+base+"/{id}/update", h.UpdateForm)
	mux.HandleFunc("POST "+base+"/{id}/update", h.Update)
	mux.HandleFunc("GET "+base+"/{id}/delete", h.DeleteForm)
	mux.HandleFunc("POST "+base+"/{id}/delete", h.Delete)
}

// List handles GET /catalog/{entity}s
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.List(r.Context())
	h.write(w, r, out, err, "list")
}

// Detail handles GET /catalog/{entity}/{id}
func (h *CatalogHandler) Detail(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Detail(r.Context(), r.PathValue("id"))
	h.write(w, r, out, err, "detail")
}

// CreateForm handles GET /catalog/{entity}/create
func (h *CatalogHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.CreateForm(r.Context())
	h.write(w, r, out, err, "create form")
}

// Create handles POST /catalog/{entity}/create
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.form(w, r)
	if !ok {
		return
	}
	out, err := h.svc.Create(r.Context(), in)
	h.write(w, r, out, err, "create")
}

// UpdateForm handles GET /catalog/{entity}/{id}/update
func (h *CatalogHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.UpdateForm(r.Context(), r.PathValue("id"))
	h.write(w, r, out, err, "update form")
}

// Update handles POST /catalog/{entity}/{id}/update
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	in, ok := h.form(w, r)
	if !ok {
		return
	}
	out, err := h.svc.Update(r.Context(), r.PathValue("id"), in)
	h.write(w, r, out, err, "update")
}

// DeleteForm handles GET /catalog/{entity}/{id}/delete
func (h *CatalogHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.DeleteForm(r.Context(), r.PathValue("id"))
	h.write(w, r, out, err, "delete form")
}

// Delete handles POST /catalog/{entity}/{id}/delete
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Delete(r.Context(), r.PathValue("id"))
	h.write(w, r, out, err, "delete")
}

// form parses the submitted body. Only body values are used so a query
// string cannot fill in a field.
func (h *CatalogHandler) form(w http.ResponseWriter, r *http.Request) (validation.Input, bool) {
	if err := r.ParseForm(); err != nil {
		h.resp.WriteError(w, r, model.NewBadRequestError("invalid form submission"))
		return nil, false
	}
	return validation.FromValues(r.PostForm), true
}

func (h *CatalogHandler) write(w http.ResponseWriter, r *http.Request, out *service.Outcome, err error, action string) {
	if err != nil {
		h.resp.WriteServiceError(w, r, err, h.entity+" "+action)
		return
	}
	h.resp.WriteOutcome(w, r, out)
}
