package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

// KnowledgeChunk is one immutable piece of wellness guidance with its
// embedding. Rows are loaded by an external ingestion process and read-only
// to the retriever.
type KnowledgeChunk struct {
  gorm.Model
  ID         uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  // sleep | exercise | nutrition | stress
  Category   string            `gorm:"column:category;not null;index" json:"category"`
  Text       string            `gorm:"column:text;not null" json:"text"`
  Embedding  datatypes.JSON    `gorm:"type:jsonb;column:embedding" json:"embedding"`
  Source     string            `gorm:"column:source" json:"source"`
  CreatedAt  time.Time         `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt  time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (KnowledgeChunk) TableName() string {
  return "knowledge_chunk"
}
