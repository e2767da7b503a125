package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/wellsync/wellsync-backend/internal/logger"
  "github.com/wellsync/wellsync-backend/internal/types"
)

type MealLogRepo interface {
  GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time) ([]*types.MealLog, error)
}

type mealLogRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMealLogRepo(db *gorm.DB, baseLog *logger.Logger) MealLogRepo {
  repoLog := baseLog.With("repo", "MealLogRepo")
  return &mealLogRepo{db: db, log: repoLog}
}

func (r *mealLogRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time) ([]*types.MealLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.MealLog
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND date = ?", userID, DayOf(day)).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
