// Package domain contains the core business entities of the review service:
// users, catalog items, reviews and comments, together with their validation
// rules. It is independent of any storage or delivery mechanism.
package domain
