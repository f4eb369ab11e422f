package domain

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyAnswered is returned when a user re-submits an answer for a
	// question they already answered. Clients treat it as a cue to advance.
	ErrAlreadyAnswered = errors.New("question has already been answered")
	// ErrNotRevealed indicates the reveal condition has not been met yet.
	ErrNotRevealed = errors.New("results are not revealed yet")
	// ErrUnknownParticipant indicates a name outside the configured roster.
	ErrUnknownParticipant = errors.New("unknown participant")
	// ErrUnknownQuestion indicates a submitted question ID is invalid.
	ErrUnknownQuestion = errors.New("unknown question")
	// ErrInvalidOption indicates an answer outside the question's options.
	ErrInvalidOption = errors.New("answer is not one of the question's options")
)
