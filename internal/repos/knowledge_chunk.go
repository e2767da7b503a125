package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/wellsync/wellsync-backend/internal/logger"
  "github.com/wellsync/wellsync-backend/internal/types"
)

type KnowledgeChunkRepo interface {
  // GetAll returns the whole corpus in insertion order. The corpus is small
  // (tens of rows) and ranking happens in the retriever.
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.KnowledgeChunk, error)
}

type knowledgeChunkRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewKnowledgeChunkRepo(db *gorm.DB, baseLog *logger.Logger) KnowledgeChunkRepo {
  repoLog := baseLog.With("repo", "KnowledgeChunkRepo")
  return &knowledgeChunkRepo{db: db, log: repoLog}
}

func (r *knowledgeChunkRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.KnowledgeChunk, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.KnowledgeChunk
  if err := transaction.WithContext(ctx).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
