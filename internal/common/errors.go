package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound      = errors.New("not found")
	ErrorDuplicateUser = errors.New("a user with this email already exists")

	// auth-specific errors
	ErrorInvalidCredentials = errors.New("invalid email or password")
	ErrorInvalidToken       = errors.New("invalid token")

	// sauce-specific errors
	ErrorMissingImage = errors.New("an image file is required")
	ErrorForbidden    = errors.New("caller does not own this sauce")
	ErrorVoteConflict = errors.New("user has already voted on this sauce")

	// service specific errors
	ErrorValidation = errors.New("validation error")
	ErrorInternal   = errors.New("internal error")
)
