package services

import "errors"

var (
	// ErrInvalidCredentials is returned on login failure without revealing
	// whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned on any refresh failure, again without
	// detail on which check failed.
	ErrInvalidToken = errors.New("invalid access token or refresh token")

	// ErrUserNotFound is returned when revoking an unknown username.
	ErrUserNotFound = errors.New("invalid user name")
)

// NotFoundError reports a missing entity or foreign key with a message fit
// for the response body.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}
