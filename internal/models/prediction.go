package models

import (
	"time"

	"github.com/google/uuid"
)

// Prediction is one user's full giver-to-receiver mapping.
type Prediction struct {
	ID          uuid.UUID         `json:"id"`
	UserName    string            `json:"userName"`
	Predictions map[string]string `json:"predictions"`
	Timestamp   time.Time         `json:"timestamp"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ParticipantStatus reports whether a participant has submitted predictions.
type ParticipantStatus struct {
	UserName     string     `json:"userName"`
	HasSubmitted bool       `json:"hasSubmitted"`
	SubmittedAt  *time.Time `json:"submittedAt"`
}

// SubmissionStatus aggregates per-participant submission state.
type SubmissionStatus struct {
	TotalParticipants int                 `json:"totalParticipants"`
	SubmittedCount    int                 `json:"submittedCount"`
	Participants      []ParticipantStatus `json:"participants"`
}
