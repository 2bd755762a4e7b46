// Package auth implements password hashing, token issuance and the
// token-to-identity lookup that guards protected routes.
//
// Access and refresh tokens are HS256 JWTs carrying the user id in the "uid"
// claim and the token kind in the "type" claim. An access token is never
// accepted where a refresh token is expected, and vice versa.
package auth
