package domain

import "errors"

// Error taxonomy shared by services, repositories, and the chat gateway.
var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a lookup for an entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotAuthorized marks an actor that is not party to the entity.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrInvalidState marks an operation against an entity whose state
	// does not allow it (e.g. chatting on an unapproved request).
	ErrInvalidState = errors.New("invalid state")

	// ErrTimeout marks a collaborator call that exceeded its deadline.
	ErrTimeout = errors.New("timed out")

	// ErrConflict marks a uniqueness violation (e.g. duplicate donor).
	ErrConflict = errors.New("already exists")

	// ErrRateLimited marks a request repeated before its cooldown
	// elapsed (e.g. asking for a new code while one is active).
	ErrRateLimited = errors.New("retry later")
)
