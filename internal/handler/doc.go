// Package handler provides the HTTP surface of the catalog.
//
// Handlers are thin: they read the path id and the submitted form, call a
// service flow and write its Outcome. A flow either renders a view (200) or
// redirects (302); service errors become the error page through
// MapServiceError (404 for missing entities, 500 otherwise).
//
// # Routes
//
//	GET  /                               redirect to /catalog
//	GET  /catalog                        dashboard
//	GET  /catalog/{entity}s              list
//	GET  /catalog/{entity}/create        create form
//	POST /catalog/{entity}/create        create
//	GET  /catalog/{entity}/{id}          detail
//	GET  /catalog/{entity}/{id}/update   update form
//	POST /catalog/{entity}/{id}/update   update
//	GET  /catalog/{entity}/{id}/delete   delete confirmation
//	POST /catalog/{entity}/{id}/delete   delete
//	GET  /health                         liveness
//
// # Example Usage
//
//	resp := handler.NewResponder(renderer, logger)
//	mux := handler.Routes(handler.RoutesConfig{
//	    Index:   handler.NewIndexHandler(indexService, resp),
//	    Health:  handler.NewHealthHandler(db),
//	    Catalog: []*handler.CatalogHandler{
//	        handler.NewCatalogHandler("author", authorService, resp),
//	    },
//	})
package handler
