// Package postgres provides PostgreSQL implementations of the store
// interfaces, the embedded goose migrations that own the schema, and the
// mapping from driver errors to store errors.
//
// Every store accepts a store.DBTX, so the same code runs against the
// connection pool or inside a transaction obtained from WithTx.
package postgres
