// Package middleware provides the HTTP middleware installed on the API
// router: request tracing and bearer-token authentication.
package middleware
