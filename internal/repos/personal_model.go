package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/wellsync/wellsync-backend/internal/logger"
  "github.com/wellsync/wellsync-backend/internal/types"
)

type PersonalModelRepo interface {
  // GetByUserID returns (nil, nil) when the user has no trained artifact yet.
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.PersonalModel, error)
  // Upsert overwrites the user's artifact wholesale. No versioning.
  Upsert(ctx context.Context, tx *gorm.DB, model *types.PersonalModel) error
}

type personalModelRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPersonalModelRepo(db *gorm.DB, baseLog *logger.Logger) PersonalModelRepo {
  repoLog := baseLog.With("repo", "PersonalModelRepo")
  return &personalModelRepo{db: db, log: repoLog}
}

func (r *personalModelRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.PersonalModel, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.PersonalModel
  err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    First(&result).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *personalModelRepo) Upsert(ctx context.Context, tx *gorm.DB, model *types.PersonalModel) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}},
      DoUpdates: clause.AssignmentColumns([]string{"weights", "samples", "trained_at", "updated_at"}),
    }).
    Create(model).Error
}
