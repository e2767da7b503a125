package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

// CheckIn is one wellness self-report per (user, calendar day). Rows are
// created by the ingestion API and read-only to the insight pipeline.
type CheckIn struct {
  gorm.Model
  ID              uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID          uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_checkin_user_day,priority:1" json:"user_id"`
  User            *User         `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Date            time.Time     `gorm:"type:date;not null;uniqueIndex:idx_checkin_user_day,priority:2" json:"date"`
  // 0.0 - 12.0
  SleepHours      float64       `gorm:"column:sleep_hours;not null" json:"sleep_hours"`
  // All scale fields: 1 - 5
  SleepQuality    int           `gorm:"column:sleep_quality;not null" json:"sleep_quality"`
  Mood            int           `gorm:"column:mood;not null" json:"mood"`
  Energy          int           `gorm:"column:energy;not null" json:"energy"`
  Stress          int           `gorm:"column:stress;not null" json:"stress"`
  // Set by the scoring pipeline; null until the first run
  ReadinessScore  *float64      `gorm:"column:readiness_score" json:"readiness_score,omitempty"`
  CreatedAt       time.Time     `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt       time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (CheckIn) TableName() string {
  return "checkin"
}
