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

type CheckInRepo interface {
  // GetRecentByUserID returns up to limit check-ins, newest first.
  GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.CheckIn, error)
  // GetAllByUserID returns the full history, newest first.
  GetAllByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CheckIn, error)
  // GetByUserAndDate returns (nil, nil) when no check-in exists for that day.
  GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time) (*types.CheckIn, error)
  GetSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.CheckIn, error)
}

type checkInRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCheckInRepo(db *gorm.DB, baseLog *logger.Logger) CheckInRepo {
  repoLog := baseLog.With("repo", "CheckInRepo")
  return &checkInRepo{db: db, log: repoLog}
}

func (r *checkInRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.CheckIn, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CheckIn
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

func (r *checkInRepo) GetAllByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CheckIn, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CheckIn
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("date DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *checkInRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time) (*types.CheckIn, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.CheckIn
  err := transaction.WithContext(ctx).
    Where("user_id = ? AND date = ?", userID, DayOf(day)).
    First(&result).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *checkInRepo) GetSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.CheckIn, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CheckIn
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
