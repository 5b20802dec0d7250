// Package middleware provides the HTTP middleware wrapped around the catalog
// routes.
//
// # Available Middleware
//
//   - RequestID: assigns or propagates the X-Request-ID header
//   - Logger: one structured zap line per request
//   - Recovery: turns a panic into the 500 error page
//   - Compress: gzip for clients that accept it
//
// Chain applies them outermost first:
//
//	h := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger(logger),
//	    middleware.Recovery(logger, errorPage),
//	    middleware.Compress,
//	)
//
// # Context Values
//
//   - GetRequestID(ctx): Returns unique request identifier
package middleware
