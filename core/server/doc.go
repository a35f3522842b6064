// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application; this package defines the
// listen port, the request body limit and the allowed CORS origins, plus the
// helpers that turn them into the values Fiber expects.
package server
