package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/wellsync/wellsync-backend/internal/types"
)

type fakeCheckInRepo struct {
  byUser map[uuid.UUID][]*types.CheckIn
  err    error
}

func (f *fakeCheckInRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.CheckIn, error) {
  all, err := f.GetAllByUserID(ctx, tx, userID)
  if err != nil {
    return nil, err
  }
  if len(all) > limit {
    all = all[:limit]
  }
  return all, nil
}

func (f *fakeCheckInRepo) GetAllByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CheckIn, error) {
  if f.err != nil {
    return nil, f.err
  }
  return f.byUser[userID], nil
}

func (f *fakeCheckInRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time) (*types.CheckIn, error) {
  if f.err != nil {
    return nil, f.err
  }
  for _, c := range f.byUser[userID] {
    if c.Date.Equal(day) {
      return c, nil
    }
  }
  return nil, nil
}

func (f *fakeCheckInRepo) GetSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.CheckIn, error) {
  if f.err != nil {
    return nil, f.err
  }
  var out []*types.CheckIn
  for _, c := range f.byUser[userID] {
    if !c.Date.Before(since) {
      out = append(out, c)
    }
  }
  return out, nil
}

type fakePersonalModelRepo struct {
  byUser  map[uuid.UUID]*types.PersonalModel
  upserts int
  err     error
}

func newFakePersonalModelRepo() *fakePersonalModelRepo {
  return &fakePersonalModelRepo{byUser: map[uuid.UUID]*types.PersonalModel{}}
}

func (f *fakePersonalModelRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.PersonalModel, error) {
  if f.err != nil {
    return nil, f.err
  }
  return f.byUser[userID], nil
}

func (f *fakePersonalModelRepo) Upsert(ctx context.Context, tx *gorm.DB, model *types.PersonalModel) error {
  if f.err != nil {
    return f.err
  }
  f.upserts++
  f.byUser[model.UserID] = model
  return nil
}

type fakeChunkRepo struct {
  chunks []*types.KnowledgeChunk
  err    error
}

func (f *fakeChunkRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.KnowledgeChunk, error) {
  if f.err != nil {
    return nil, f.err
  }
  return f.chunks, nil
}

type fakeEmbedder struct {
  vec []float32
  err error
}

func (f *fakeEmbedder) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
  if f.err != nil {
    return nil, f.err
  }
  out := make([][]float32, len(inputs))
  for i := range inputs {
    out[i] = f.vec
  }
  return out, nil
}

// historyOf builds n daily check-ins with mildly varying fields.
func historyOf(n int) []*types.CheckIn {
  base := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
  var out []*types.CheckIn
  for i := 0; i < n; i++ {
    out = append(out, &types.CheckIn{
      ID:           uuid.New(),
      Date:         base.AddDate(0, 0, i),
      SleepHours:   6.0 + float64(i%4)*0.5,
      SleepQuality: 2 + i%3,
      Mood:         2 + (i+1)%3,
      Energy:       2 + (i+2)%3,
      Stress:       1 + i%4,
    })
  }
  return out
}

var errBoom = fmt.Errorf("boom")
