package handler

import "net/http"

// RoutesConfig holds the handlers mounted by Routes
type RoutesConfig struct {
	Index   *IndexHandler
	Health  *HealthHandler
	Catalog []*CatalogHandler
}

// Routes builds the server mux
func Routes(cfg RoutesConfig) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", cfg.Health.Health)

	mux.HandleFunc("GET /{$}", cfg.Index.Root)
	mux.HandleFunc("GET /catalog", cfg.Index.Index)
	for _, h := range cfg.Catalog {
		h.Register(mux)
	}
	mux.HandleFunc("/", cfg.Index.NotFound)

	return mux
}
