package middleware

import "errors"

var (
	errMissingAuthHeader  = errors.New("authorization header is missing")
	errInvalidTokenFormat = errors.New("invalid token format, must be Bearer token")
	errInvalidToken       = errors.New("invalid or expired token")
)
