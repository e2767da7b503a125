package repos

import (
  "context"
  "errors"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/wellsync/wellsync-backend/internal/logger"
  "github.com/wellsync/wellsync-backend/internal/types"
)

type AgentOutputRepo interface {
  Create(ctx context.Context, tx *gorm.DB, outputs []*types.AgentOutput) ([]*types.AgentOutput, error)
  // GetLatest returns the most recent output for (user, day, event kind),
  // or (nil, nil) when none exists.
  GetLatest(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time, eventType string) (*types.AgentOutput, error)
  GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time) ([]*types.AgentOutput, error)
}

type agentOutputRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAgentOutputRepo(db *gorm.DB, baseLog *logger.Logger) AgentOutputRepo {
  repoLog := baseLog.With("repo", "AgentOutputRepo")
  return &agentOutputRepo{db: db, log: repoLog}
}

func (r *agentOutputRepo) Create(ctx context.Context, tx *gorm.DB, outputs []*types.AgentOutput) ([]*types.AgentOutput, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(outputs) == 0 {
    return []*types.AgentOutput{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&outputs).Error; err != nil {
    return nil, err
  }
  return outputs, nil
}

func (r *agentOutputRepo) GetLatest(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time, eventType string) (*types.AgentOutput, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.AgentOutput
  err := transaction.WithContext(ctx).
    Where("user_id = ? AND date = ? AND event_type = ?", userID, DayOf(day), eventType).
    Order("created_at DESC").
    First(&result).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *agentOutputRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time) ([]*types.AgentOutput, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.AgentOutput
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND date = ?", userID, DayOf(day)).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
