package handler

import (
	"bytes"
	"io"
	"net/http"

	"github.com/forgo/library/internal/model"
	"github.com/forgo/library/internal/service"
	"go.uber.org/zap"
)

// Renderer writes named views and error pages
type Renderer interface {
	Render(w io.Writer, view string, data map[string]any) error
	RenderError(w io.Writer, problem *model.ProblemDetails) error
}

// Responder writes flow outcomes and error pages
type Responder struct {
	renderer Renderer
	logger   *zap.Logger
}

// NewResponder creates a responder. A nil logger discards output.
func NewResponder(renderer Renderer, logger *zap.Logger) *Responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{renderer: renderer, logger: logger}
}

// WriteHTML renders view with the given status code. The page is rendered
// before the status is sent, so a failing template yields the 500 page.
func (rs *Responder) WriteHTML(w http.ResponseWriter, r *http.Request, status int, view string, data map[string]any) {
	var buf bytes.Buffer
	if err := rs.renderer.Render(&buf, view, data); err != nil {
		rs.logger.Error("render failed",
			zap.String("view", view),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		rs.WriteError(w, r, model.NewInternalError(""))
		return
	}
	writePage(w, status, &buf)
}

// WriteOutcome writes a rendered view or a redirect
func (rs *Responder) WriteOutcome(w http.ResponseWriter, r *http.Request, out *service.Outcome) {
	if out.IsRedirect() {
		http.Redirect(w, r, out.Location, http.StatusFound)
		return
	}

	status := out.Status
	if status == 0 {
		status = http.StatusOK
	}
	rs.WriteHTML(w, r, status, out.View, out.Model)
}

// WriteError writes the error page for problem. If the page itself cannot
// be rendered a plain-text body is sent with the same status.
func (rs *Responder) WriteError(w http.ResponseWriter, r *http.Request, problem *model.ProblemDetails) {
	var buf bytes.Buffer
	if err := rs.renderer.RenderError(&buf, problem); err != nil {
		rs.logger.Error("render error page failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		http.Error(w, problem.Title, problem.Status)
		return
	}
	writePage(w, problem.Status, &buf)
}

func writePage(w http.ResponseWriter, status int, page *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = page.WriteTo(w)
}

// WriteServiceError maps err to a problem and writes its error page.
// Store failures are logged with the underlying cause.
func (rs *Responder) WriteServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	problem := MapServiceErrorWithContext(err, operation)
	if problem.Status >= http.StatusInternalServerError {
		rs.logger.Error("request failed",
			zap.String("operation", operation),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	rs.WriteError(w, r, problem)
}
