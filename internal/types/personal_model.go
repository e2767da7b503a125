package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

// PersonalModel is the per-user trained regression artifact. Exactly one row
// per user, overwritten wholesale on retrain, absent until the first training
// succeeds.
type PersonalModel struct {
  gorm.Model
  ID         uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
  User       *User             `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Weights    datatypes.JSON    `gorm:"type:jsonb;column:weights;not null" json:"weights"`
  Samples    int               `gorm:"column:samples;not null" json:"samples"`
  TrainedAt  time.Time         `gorm:"column:trained_at;not null" json:"trained_at"`
  CreatedAt  time.Time         `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt  time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (PersonalModel) TableName() string {
  return "personal_model"
}
