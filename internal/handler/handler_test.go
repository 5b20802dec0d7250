package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/forgo/library/internal/database"
	"github.com/forgo/library/internal/model"
	"github.com/forgo/library/internal/service"
	"github.com/forgo/library/internal/validation"
	"github.com/forgo/library/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// ============================================================================
// Mock CatalogService
// ============================================================================

type mockCatalogService struct {
	listFunc       func(ctx context.Context) (*service.Outcome, error)
	detailFunc     func(ctx context.Context, id string) (*service.Outcome, error)
	createFormFunc func(ctx context.Context) (*service.Outcome, error)
	createFunc     func(ctx context.Context, in validation.Input) (*service.Outcome, error)
	updateFormFunc func(ctx context.Context, id string) (*service.Outcome, error)
	updateFunc     func(ctx context.Context, id string, in validation.Input) (*service.Outcome, error)
	deleteFormFunc func(ctx context.Context, id string) (*service.Outcome, error)
	deleteFunc     func(ctx context.Context, id string) (*service.Outcome, error)
}

func page(title string) *service.Outcome {
	return service.Render(service.ViewGenreList, map[string]any{"title": title})
}

func (m *mockCatalogService) List(ctx context.Context) (*service.Outcome, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return page("list"), nil
}

func (m *mockCatalogService) Detail(ctx context.Context, id string) (*service.Outcome, error) {
	if m.detailFunc != nil {
		return m.detailFunc(ctx, id)
	}
	return page("detail " + id), nil
}

func (m *mockCatalogService) CreateForm(ctx context.Context) (*service.Outcome, error) {
	if m.createFormFunc != nil {
		return m.createFormFunc(ctx)
	}
	return page("create form"), nil
}

func (m *mockCatalogService) Create(ctx context.Context, in validation.Input) (*service.Outcome, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, in)
	}
	return service.Redirect("/catalog/genre/new"), nil
}

func (m *mockCatalogService) UpdateForm(ctx context.Context, id string) (*service.Outcome, error) {
	if m.updateFormFunc != nil {
		return m.updateFormFunc(ctx, id)
	}
	return page("update form " + id), nil
}

func (m *mockCatalogService) Update(ctx context.Context, id string, in validation.Input) (*service.Outcome, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, in)
	}
	return service.Redirect("/catalog/genre/" + id), nil
}

func (m *mockCatalogService) DeleteForm(ctx context.Context, id string) (*service.Outcome, error) {
	if m.deleteFormFunc != nil {
		return m.deleteFormFunc(ctx, id)
	}
	return page("delete form " + id), nil
}

func (m *mockCatalogService) Delete(ctx context.Context, id string) (*service.Outcome, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return service.Redirect(service.GenreListURL), nil
}

// ============================================================================
// Mock IndexService and Pinger
// ============================================================================

type mockIndexService struct {
	indexFunc func(ctx context.Context) (*service.Outcome, error)
}

func (m *mockIndexService) Index(ctx context.Context) (*service.Outcome, error) {
	if m.indexFunc != nil {
		return m.indexFunc(ctx)
	}
	return service.Render(service.ViewIndex, map[string]any{
		"title": "Local Library Home",
		"data":  &service.IndexCounts{BookCount: 7},
	}), nil
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// ============================================================================
// Helpers
// ============================================================================

func newTestMux(t *testing.T, svc CatalogService, store Pinger) *http.ServeMux {
	t.Helper()
	renderer, err := view.New()
	require.NoError(t, err)

	resp := NewResponder(renderer, nil)
	return Routes(RoutesConfig{
		Index:   NewIndexHandler(&mockIndexService{}, resp),
		Health:  NewHealthHandler(store),
		Catalog: []*CatalogHandler{NewCatalogHandler("genre", svc, resp)},
	})
}

func serve(mux http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// ============================================================================
// Routing
// ============================================================================

func TestRoutes_RootRedirectsToCatalog(t *testing.T) {
	mux := newTestMux(t, &mockCatalogService{}, nil)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/catalog", rec.Header().Get("Location"))
}

func TestRoutes_IndexRendersDashboard(t *testing.T) {
	mux := newTestMux(t, &mockCatalogService{}, nil)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/catalog", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<strong>Books:</strong> 7")
}

func TestRoutes_UnknownPathRendersNotFound(t *testing.T) {
	mux := newTestMux(t, &mockCatalogService{}, nil)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestRoutes_DispatchToFlows(t *testing.T) {
	mux := newTestMux(t, &mockCatalogService{}, nil)

	tests := []struct {
		path  string
		title string
	}{
		{"/catalog/genres", "list"},
		{"/catalog/genre/create", "create form"},
		{"/catalog/genre/g1", "detail g1"},
		{"/catalog/genre/g1/update", "update form g1"},
		{"/catalog/genre/g1/delete", "delete form g1"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(mux, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "<title>"+tt.title+"</title>")
		})
	}
}

// ============================================================================
// Form submissions
// ============================================================================

func TestCatalogHandler_CreatePassesBodyValues(t *testing.T) {
	var got validation.Input
	svc := &mockCatalogService{
		createFunc: func(ctx context.Context, in validation.Input) (*service.Outcome, error) {
			got = in
			return service.Redirect("/catalog/genre/g9"), nil
		},
	}
	mux := newTestMux(t, svc, nil)

	rec := serve(mux, postForm("/catalog/genre/create?name=fromquery", url.Values{"name": {"Poetry"}}))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/catalog/genre/g9", rec.Header().Get("Location"))
	assert.Equal(t, []string{"Poetry"}, got["name"])
}

func TestCatalogHandler_CreateInvalidRendersForm(t *testing.T) {
	svc := &mockCatalogService{
		createFunc: func(ctx context.Context, in validation.Input) (*service.Outcome, error) {
			return service.Render(service.ViewGenreForm, map[string]any{
				"title":  "Create Genre",
				"genre":  &model.Genre{Name: "ab"},
				"errors": validation.Errors{{Field: "name", Message: "Genre Name must be between 3 and 100 characters"}},
			}), nil
		},
	}
	mux := newTestMux(t, svc, nil)

	rec := serve(mux, postForm("/catalog/genre/create", url.Values{"name": {"ab"}}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Genre Name must be between 3 and 100 characters")
	assert.Contains(t, rec.Body.String(), `value="ab"`)
}

func TestCatalogHandler_UpdateUsesPathID(t *testing.T) {
	var gotID string
	svc := &mockCatalogService{
		updateFunc: func(ctx context.Context, id string, in validation.Input) (*service.Outcome, error) {
			gotID = id
			return service.Redirect("/catalog/genre/" + id), nil
		},
	}
	mux := newTestMux(t, svc, nil)

	rec := serve(mux, postForm("/catalog/genre/g1/update", url.Values{"name": {"Poetry"}}))

	assert.Equal(t, "g1", gotID)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/catalog/genre/g1", rec.Header().Get("Location"))
}

func TestCatalogHandler_DeleteRedirectsToList(t *testing.T) {
	var gotID string
	svc := &mockCatalogService{
		deleteFunc: func(ctx context.Context, id string) (*service.Outcome, error) {
			gotID = id
			return service.Redirect(service.GenreListURL), nil
		},
	}
	mux := newTestMux(t, svc, nil)

	rec := serve(mux, postForm("/catalog/genre/g2/delete", url.Values{}))

	assert.Equal(t, "g2", gotID)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, service.GenreListURL, rec.Header().Get("Location"))
}

func TestCatalogHandler_MalformedBodyIsBadRequest(t *testing.T) {
	called := false
	svc := &mockCatalogService{
		createFunc: func(ctx context.Context, in validation.Input) (*service.Outcome, error) {
			called = true
			return nil, nil
		},
	}
	mux := newTestMux(t, svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/catalog/genre/create", strings.NewReader("name=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(mux, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}

// ============================================================================
// Errors
// ============================================================================

func TestCatalogHandler_NotFoundPage(t *testing.T) {
	svc := &mockCatalogService{
		detailFunc: func(ctx context.Context, id string) (*service.Outcome, error) {
			return nil, service.ErrGenreNotFound
		},
	}
	mux := newTestMux(t, svc, nil)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/catalog/genre/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Genre not found")
}

func TestCatalogHandler_StoreFailurePage(t *testing.T) {
	svc := &mockCatalogService{
		listFunc: func(ctx context.Context) (*service.Outcome, error) {
			return nil, fmt.Errorf("listing: %w", database.ErrConnection)
		},
	}
	mux := newTestMux(t, svc, nil)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/catalog/genres", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "genre list: an unexpected error occurred")
	assert.NotContains(t, rec.Body.String(), "database connection error")
}

// brokenRenderer fails the views named in broken and renders the others
type brokenRenderer struct {
	broken     map[string]bool
	errorFails bool
}

func (b *brokenRenderer) Render(w io.Writer, view string, data map[string]any) error {
	if b.broken[view] {
		_, _ = io.WriteString(w, "partial")
		return errors.New("template exploded")
	}
	_, err := io.WriteString(w, "<p>"+view+"</p>")
	return err
}

func (b *brokenRenderer) RenderError(w io.Writer, problem *model.ProblemDetails) error {
	if b.errorFails {
		return errors.New("error page exploded")
	}
	_, err := fmt.Fprintf(w, "<h1>%s</h1>", problem.Title)
	return err
}

func TestResponder_RenderFailureServesErrorPage(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	resp := NewResponder(&brokenRenderer{broken: map[string]bool{"genre_list": true}}, zap.New(core))

	rec := httptest.NewRecorder()
	resp.WriteHTML(rec, httptest.NewRequest(http.MethodGet, "/catalog/genres", nil), http.StatusOK, "genre_list", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "<h1>Internal Server Error</h1>", rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "partial")
	require.Equal(t, 1, logs.FilterMessage("render failed").Len())
}

func TestResponder_ErrorPageFailureFallsBackToText(t *testing.T) {
	resp := NewResponder(&brokenRenderer{errorFails: true}, nil)

	rec := httptest.NewRecorder()
	resp.WriteError(rec, httptest.NewRequest(http.MethodGet, "/catalog/genre/x", nil), model.NewNotFoundError("Genre"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestResponder_RenderedPageKeepsStatus(t *testing.T) {
	resp := NewResponder(&brokenRenderer{}, nil)

	rec := httptest.NewRecorder()
	resp.WriteHTML(rec, httptest.NewRequest(http.MethodGet, "/catalog/genres", nil), http.StatusOK, "genre_list", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<p>genre_list</p>", rec.Body.String())
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		detail string
	}{
		{service.ErrAuthorNotFound, http.StatusNotFound, "Author not found"},
		{service.ErrBookNotFound, http.StatusNotFound, "Book not found"},
		{service.ErrGenreNotFound, http.StatusNotFound, "Genre not found"},
		{fmt.Errorf("wrapped: %w", service.ErrBookInstanceNotFound), http.StatusNotFound, "Book copy not found"},
		{errors.New("boom"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.detail, func(t *testing.T) {
			pd := MapServiceError(tt.err)
			require.NotNil(t, pd)
			assert.Equal(t, tt.status, pd.Status)
			assert.Equal(t, tt.detail, pd.Detail)
		})
	}

	assert.Nil(t, MapServiceError(nil))
}

func TestMapServiceErrorWithContext_OnlyRewritesStoreFailures(t *testing.T) {
	pd := MapServiceErrorWithContext(errors.New("boom"), "book create")
	assert.Equal(t, "book create: an unexpected error occurred", pd.Detail)

	pd = MapServiceErrorWithContext(service.ErrBookNotFound, "book detail")
	assert.Equal(t, "Book not found", pd.Detail)
}

// ============================================================================
// Health
// ============================================================================

func TestHealth_StoreReachable(t *testing.T) {
	mux := newTestMux(t, &mockCatalogService{}, pingerFunc(func(ctx context.Context) error { return nil }))

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","database":"ok"}`, rec.Body.String())
}

func TestHealth_StoreUnreachable(t *testing.T) {
	mux := newTestMux(t, &mockCatalogService{}, pingerFunc(func(ctx context.Context) error {
		return database.ErrConnection
	}))

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable","database":"unreachable"}`, rec.Body.String())
}
