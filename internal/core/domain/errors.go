package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every service error wraps exactly one of these, so callers
// match with errors.Is and map to an HTTP status without string checks.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal server error")
)

var (
	// ErrInvalidCredentials is returned both for an unknown identifier and
	// for a wrong password, so the two cases are indistinguishable to the
	// caller.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid identifier or password", ErrUnauthorized)
	// ErrTokenInvalid covers malformed, forged and expired tokens.
	ErrTokenInvalid = fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	// ErrTokenReused is returned when a presented refresh token does not
	// match the stored value: rotated away, cleared by logout, or never ours.
	ErrTokenReused = fmt.Errorf("%w: refresh token expired or already used", ErrUnauthorized)

	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)
	ErrVideoNotFound    = fmt.Errorf("%w: video", ErrNotFound)
	ErrCommentNotFound  = fmt.Errorf("%w: comment", ErrNotFound)
	ErrPlaylistNotFound = fmt.Errorf("%w: playlist", ErrNotFound)

	ErrNotOwner       = fmt.Errorf("%w: not the owner of this resource", ErrUnauthorized)
	ErrAlreadyExists  = fmt.Errorf("%w: already exists", ErrInvalidInput)
	ErrSelfSubscribe  = fmt.Errorf("%w: cannot subscribe to own channel", ErrInvalidInput)
	ErrVideoNotInList = fmt.Errorf("%w: video not in playlist", ErrNotFound)
)
