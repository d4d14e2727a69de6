// Package common contains shared constants and sentinel errors used across
// Arondight components.
package common

// AccessTokenHeaderName is the HTTP header carrying the session token on
// gated requests. Both a bare token and "Bearer <token>" are accepted.
const AccessTokenHeaderName = "Authorization"

// BearerScheme is the optional prefix in front of the token.
const BearerScheme = "Bearer"
