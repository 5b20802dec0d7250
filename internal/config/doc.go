// Package config manages application configuration for the library catalog.
//
// Configuration is loaded from environment variables. An optional .env file in
// the working directory is read first; real environment variables win.
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Environment Variables
//
//	SERVER_PORT          - HTTP server port (default: 3000)
//	SERVER_ENV           - development, production or test (default: development)
//	SERVER_READ_TIMEOUT  - http.Server read timeout (default: 15s)
//	SERVER_WRITE_TIMEOUT - http.Server write timeout (default: 15s)
//	DB_HOST, DB_PORT     - SurrealDB websocket endpoint (default: localhost:8000)
//	DB_NAMESPACE         - SurrealDB namespace (default: library)
//	DB_DATABASE          - SurrealDB database (default: catalog)
//	DB_USER, DB_PASSWORD - root credentials (default: root/root)
//	AGGREGATE_TIMEOUT    - per-read bound for parallel lookups (default: 5s)
package config
