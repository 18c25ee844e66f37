package model

import "errors"

var (
	// ErrNotificationNotFound is returned when a notification does not
	// exist or is not owned by the requesting user.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrInvalidNotification is returned when create input is missing a
	// required field or exceeds a stored length limit.
	ErrInvalidNotification = errors.New("invalid notification")
)
