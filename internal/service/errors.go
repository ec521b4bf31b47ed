package service

import "errors"

// Domain failures surface directly to the handler layer, which translates
// them to HTTP status codes.
var (
	ErrValidation         = errors.New("validation")          // 400
	ErrNotFound           = errors.New("not found")           // 404
	ErrUserExists         = errors.New("user already exists") // 409
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
	ErrInactiveAccount    = errors.New("inactive account")    // 400
	ErrNoValidProducts    = errors.New("no valid products")   // 400
	ErrAlreadyFinalized   = errors.New("order is not processing") // 400
)
