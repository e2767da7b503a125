package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/wellsync/wellsync-backend/internal/logger"
  "github.com/wellsync/wellsync-backend/internal/types"
)

type WorkoutLogRepo interface {
  // GetRecentByUserID returns up to limit workouts, newest first.
  GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.WorkoutLog, error)
  GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time) ([]*types.WorkoutLog, error)
  GetSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.WorkoutLog, error)
}

type workoutLogRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewWorkoutLogRepo(db *gorm.DB, baseLog *logger.Logger) WorkoutLogRepo {
  repoLog := baseLog.With("repo", "WorkoutLogRepo")
  return &workoutLogRepo{db: db, log: repoLog}
}

func (r *workoutLogRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.WorkoutLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.WorkoutLog
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("date DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *workoutLogRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time) ([]*types.WorkoutLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.WorkoutLog
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

func (r *workoutLogRepo) GetSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.WorkoutLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.WorkoutLog
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND date >= ?", userID, DayOf(since)).
    Order("date ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
