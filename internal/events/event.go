package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	MorningRecommendation EventType = "morning_recommendation"
	EveningSummary        EventType = "evening_summary"
	ModelRetraining       EventType = "model_retraining"
)

func (t EventType) Valid() bool {
	switch t {
	case MorningRecommendation, EveningSummary, ModelRetraining:
		return true
	}
	return false
}

// WellnessEvent is an ephemeral trigger covering a batch of users. It is
// consumed once by the gateway and never persisted.
type WellnessEvent struct {
	Type    EventType
	UserIDs []uuid.UUID
	FiredAt time.Time
}

func NewWellnessEvent(t EventType, userIDs []uuid.UUID) *WellnessEvent {
	return &WellnessEvent{
		Type:    t,
		UserIDs: userIDs,
		FiredAt: time.Now().UTC(),
	}
}
