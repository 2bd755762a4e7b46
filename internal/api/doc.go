// Package api implements the HTTP handlers for users, items, reviews and
// comments. Handlers decode and validate requests, call the stores or the
// authenticator, and translate errors into status codes and safe messages
// with HandleAPIError.
package api
