// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the HTTP handlers and services, and the sentinel errors defined here
// are the only storage errors callers need to inspect.
package store
