package domain

import (
	"errors"
	"time"
)

// ContentType identifies the kind of media a content record carries.
type ContentType string

const (
	TypeMusic ContentType = "music"
	TypeMovie ContentType = "movie"
	TypeBook  ContentType = "book"
)

// ValidContentType reports whether t is a known media kind.
func ValidContentType(t ContentType) bool {
	return t == TypeMusic || t == TypeMovie || t == TypeBook
}

// ModerationStatus represents the approval state gating public visibility.
type ModerationStatus string

const (
	StatusPending  ModerationStatus = "pending"
	StatusApproved ModerationStatus = "approved"
	StatusRejected ModerationStatus = "rejected"
)

// validTransitions defines the allowed moderation transitions. Approved and
// rejected are terminal.
var validTransitions = map[ModerationStatus][]ModerationStatus{
	StatusPending: {StatusApproved, StatusRejected},
}

var ErrContentNotFound = errors.New("content not found")
var ErrInvalidStatus = errors.New("invalid moderation status")
var ErrInvalidTransition = errors.New("invalid moderation transition")
var ErrMissingPayload = errors.New("content file missing")
var ErrInvalidContentType = errors.New("invalid content type")

// ValidModerationDecision reports whether s is a status an admin may set.
func ValidModerationDecision(s ModerationStatus) bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s ModerationStatus) CanTransitionTo(next ModerationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Content is a single unit of media metadata plus moderation state.
type Content struct {
	ID          string           `json:"id" bson:"_id,omitempty"`
	Title       string           `json:"title" bson:"title"`
	Description string           `json:"description" bson:"description"`
	Type        ContentType      `json:"type" bson:"type"`
	Genre       string           `json:"genre" bson:"genre"`
	Duration    string           `json:"duration" bson:"duration"`
	ArtistID    string           `json:"artist_id" bson:"artist_id"`
	FilePath    string           `json:"file_path" bson:"file_path"`
	Thumbnail   string           `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Status      ModerationStatus `json:"status" bson:"status"`
	CreatedAt   time.Time        `json:"created_at" bson:"created_at"`
}
