package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

// FallbackModel is persisted as ModelUsed when generation failed and the
// deterministic fallback text was written instead.
const FallbackModel = "deterministic-fallback"

// AgentOutput is one generated (or fallback) text per (user, day, event kind).
// Rows are append-only: a re-fired trigger adds a new row, readers take the
// most recent by created_at.
type AgentOutput struct {
  gorm.Model
  ID              uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID          uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
  User            *User         `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Date            time.Time     `gorm:"type:date;not null;index" json:"date"`
  EventType       string        `gorm:"column:event_type;not null;index" json:"event_type"`
  ReadinessScore  *float64      `gorm:"column:readiness_score" json:"readiness_score,omitempty"`
  // rest / light / moderate / high; null for non-morning outputs
  Intensity       *string       `gorm:"column:intensity" json:"intensity,omitempty"`
  Text            string        `gorm:"column:llm_text;not null" json:"llm_text"`
  ModelUsed       string        `gorm:"column:model_used;not null" json:"model_used"`
  CreatedAt       time.Time     `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt       time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (AgentOutput) TableName() string {
  return "agent_output"
}
