package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

type WorkoutLog struct {
  gorm.Model
  ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
  User         *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Date         time.Time      `gorm:"type:date;not null" json:"date"`
  Type         string         `gorm:"column:type;not null" json:"type"`
  DurationMin  int            `gorm:"column:duration_min;not null" json:"duration_min"`
  // Rate of Perceived Exertion: 1 - 10
  RPE          int            `gorm:"column:rpe;not null" json:"rpe"`
  CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (WorkoutLog) TableName() string {
  return "workout_log"
}
