// Package testdb provides a migrated PostgreSQL database for integration
// tests. It uses the database named by REVIEWS_TEST_DATABASE_URL when set and
// otherwise starts a disposable container with testcontainers-go.
package testdb
