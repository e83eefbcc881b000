package services

import (
	"errors"
	"fmt"
)

// Error taxonomy of the like workflow. Controllers map these onto HTTP
// status codes; everything else is a RemoteIOError.
var (
	// ErrNotFound - referenced like or conversation does not exist
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized - acting user is not the addressee of the like
	ErrUnauthorized = errors.New("acting user is not the addressee")

	// ErrInvalidTransition - the like already reached a terminal status
	ErrInvalidTransition = errors.New("like is not pending")

	// ErrDecisionInFlight - a decision for this like id is already being
	// processed by this process; the caller should not retry blindly
	ErrDecisionInFlight = errors.New("decision already in flight for this like")

	// ErrSelfLike - fromUserId and toUserId are the same user
	ErrSelfLike = errors.New("cannot like your own broadcast")
)

// RemoteIOError wraps a failed store call with enough context to log and
// retry: the operation name and the entity it was acting on.
type RemoteIOError struct {
	Op       string
	EntityID string
	Err      error
}

func (e *RemoteIOError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Op, e.EntityID, e.Err)
}

func (e *RemoteIOError) Unwrap() error { return e.Err }

func remoteErr(op, entityID string, err error) error {
	return &RemoteIOError{Op: op, EntityID: entityID, Err: err}
}
