// Package shared holds the request-context keys, JSON request decoding and
// response helpers used by both the API handlers and their middleware.
package shared
