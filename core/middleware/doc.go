// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - rayid: Assigns every request a Request ID (RayID), stores it in the context
//     and echoes it in the X-Ray-ID response header for tracing.
//   - requestlog: Logs every request with method, path, status and latency,
//     tagged with the RayID.
//
// Both are registered globally by the start command, rayid first.
package middleware
