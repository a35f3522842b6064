// Package apperr defines the error taxonomy surfaced by the HTTP API.
//
//   - ValidationError: the request is malformed (not an array, missing a required field).
//     Surfaced as 400 before any transaction is opened.
//   - NotFoundError: the addressed row does not exist. Surfaced as 404.
//   - StorageError: a store failure that aborted the operation. Surfaced as 500 with
//     the underlying message; the transaction has been rolled back.
//
// Respond maps any error to the JSON shape used by every handler: {"error": "..."}.
package apperr
