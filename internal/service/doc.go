// Package service holds use cases that span several stores. Each runs its
// store calls inside one transaction via store.RunInTransaction, binding the
// stores to it with WithTx.
package service
