package service

import "errors"

var (
	// ErrSessionNotFound indicates the requested playground session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrCompletionPending indicates a completion is already in flight for the session.
	ErrCompletionPending = errors.New("completion already pending")
	// ErrNoPendingCompletion indicates a cancel request found nothing in flight.
	ErrNoPendingCompletion = errors.New("no completion pending")
	// ErrCompletionFailed wraps completion engine failures.
	ErrCompletionFailed = errors.New("completion request failed")
	// ErrCompletionCancelled indicates the user aborted the in-flight completion.
	ErrCompletionCancelled = errors.New("completion cancelled")
	// ErrFeedbackPending indicates a feedback request is already in flight for the session.
	ErrFeedbackPending = errors.New("feedback request already pending")
	// ErrFeedbackFailed wraps judge engine failures.
	ErrFeedbackFailed = errors.New("feedback request failed")
	// ErrFeedbackNotFound indicates no feedback has been produced for the session yet.
	ErrFeedbackNotFound = errors.New("feedback not found")
	// ErrEmptyMessage indicates the submitted content was blank after trimming.
	ErrEmptyMessage = errors.New("message content must not be empty")
	// ErrEmptyTitle indicates an assignment commit tried to blank the title.
	ErrEmptyTitle = errors.New("assignment title must not be empty")
	// ErrAttachmentTooLarge indicates the upload exceeded the configured limit.
	ErrAttachmentTooLarge = errors.New("attachment exceeds maximum allowed size")
)
