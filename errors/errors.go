package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")
	ErrEmptyWords  = fmt.Errorf("no words have been found")

	ErrInvalidParticipant       = fmt.Errorf("invalid participant")
	ErrParticipantAlreadyExists = fmt.Errorf("participant already exists")
	ErrParticipantNotFound      = fmt.Errorf("participant not found")
	ErrInvalidMessage           = fmt.Errorf("invalid message")
	ErrUnknownSender            = fmt.Errorf("sender is not a participant")
	ErrInvalidLimit             = fmt.Errorf("limit must be a positive integer")
	ErrInvalidSearch            = fmt.Errorf("search query is required")
	ErrInvalidDatabaseURL       = fmt.Errorf("invalid database url")
)
