package files

import (
	"errors"
	"fmt"
)

var (
	ErrNoSubscriptions = errors.New("no subscriptions")
	ErrNoFilesForRoom  = errors.New("no files subscribed in room")
	ErrFetchFailed     = errors.New("file fetch failed")
	ErrStoreFailure    = errors.New("subscription store failed")
	ErrNoAccessToken   = errors.New("no access token for user")
	ErrDeliveryFailed  = errors.New("chat delivery failed")
)

// Pipeline stages.
const (
	StageResolve = "resolve"
	StageToken   = "token"
	StageFetch   = "fetch"
	StagePresent = "present"
	StageNotify  = "notify"
)

// StageError records which stage of the pipeline failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageError(stage string, kind, cause error) *StageError {
	if cause == nil {
		return &StageError{Stage: stage, Err: kind}
	}
	return &StageError{Stage: stage, Err: fmt.Errorf("%w: %w", kind, cause)}
}
