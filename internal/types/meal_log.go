package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

type MealLog struct {
  gorm.Model
  ID         uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
  User       *User         `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Date       time.Time     `gorm:"type:date;not null" json:"date"`
  // e.g. "breakfast", "lunch", "dinner", "snack"
  MealType   string        `gorm:"column:meal_type;not null" json:"meal_type"`
  // Quality rating: 1 - 5
  Quality    int           `gorm:"column:quality;not null" json:"quality"`
  Notes      string        `gorm:"column:notes" json:"notes,omitempty"`
  CreatedAt  time.Time     `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt  time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (MealLog) TableName() string {
  return "meal_log"
}
