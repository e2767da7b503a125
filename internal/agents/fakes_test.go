package agents

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/wellsync/wellsync-backend/internal/repos"
  "github.com/wellsync/wellsync-backend/internal/services"
  "github.com/wellsync/wellsync-backend/internal/types"
)

var errBoom = fmt.Errorf("boom")

type stubCheckInRepo struct {
  byUser map[uuid.UUID][]*types.CheckIn
}

func (s *stubCheckInRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.CheckIn, error) {
  all := s.byUser[userID]
  if len(all) > limit {
    all = all[:limit]
  }
  return all, nil
}

func (s *stubCheckInRepo) GetAllByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CheckIn, error) {
  return s.byUser[userID], nil
}

func (s *stubCheckInRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time) (*types.CheckIn, error) {
  for _, c := range s.byUser[userID] {
    if c.Date.Equal(day) {
      return c, nil
    }
  }
  return nil, nil
}

func (s *stubCheckInRepo) GetSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.CheckIn, error) {
  var out []*types.CheckIn
  for _, c := range s.byUser[userID] {
    if !c.Date.Before(since) {
      out = append(out, c)
    }
  }
  return out, nil
}

type stubWorkoutRepo struct {
  byUser map[uuid.UUID][]*types.WorkoutLog
}

func (s *stubWorkoutRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.WorkoutLog, error) {
  all := s.byUser[userID]
  if len(all) > limit {
    all = all[:limit]
  }
  return all, nil
}

func (s *stubWorkoutRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time) ([]*types.WorkoutLog, error) {
  var out []*types.WorkoutLog
  for _, w := range s.byUser[userID] {
    if w.Date.Equal(day) {
      out = append(out, w)
    }
  }
  return out, nil
}

func (s *stubWorkoutRepo) GetSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.WorkoutLog, error) {
  var out []*types.WorkoutLog
  for _, w := range s.byUser[userID] {
    if !w.Date.Before(since) {
      out = append(out, w)
    }
  }
  return out, nil
}

type stubMealRepo struct {
  byUser map[uuid.UUID][]*types.MealLog
}

func (s *stubMealRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time) ([]*types.MealLog, error) {
  var out []*types.MealLog
  for _, m := range s.byUser[userID] {
    if m.Date.Equal(day) {
      out = append(out, m)
    }
  }
  return out, nil
}

type spyOutputRepo struct {
  created []*types.AgentOutput
  err     error
}

func (s *spyOutputRepo) Create(ctx context.Context, tx *gorm.DB, outputs []*types.AgentOutput) ([]*types.AgentOutput, error) {
  if s.err != nil {
    return nil, s.err
  }
  s.created = append(s.created, outputs...)
  return outputs, nil
}

func (s *spyOutputRepo) GetLatest(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time, eventType string) (*types.AgentOutput, error) {
  for i := len(s.created) - 1; i >= 0; i-- {
    o := s.created[i]
    if o.UserID == userID && o.Date.Equal(day) && o.EventType == eventType {
      return o, nil
    }
  }
  return nil, nil
}

func (s *spyOutputRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time) ([]*types.AgentOutput, error) {
  var out []*types.AgentOutput
  for _, o := range s.created {
    if o.UserID == userID && o.Date.Equal(day) {
      out = append(out, o)
    }
  }
  return out, nil
}

type spyCallLogRepo struct {
  entries []*types.AICallLog
}

func (s *spyCallLogRepo) Create(ctx context.Context, tx *gorm.DB, logs []*types.AICallLog) ([]*types.AICallLog, error) {
  s.entries = append(s.entries, logs...)
  return logs, nil
}

type stubEngine struct {
  score float64
  err   error
}

func (s *stubEngine) Compute(ctx context.Context, userID uuid.UUID, current *types.CheckIn) (float64, error) {
  return s.score, s.err
}

func (s *stubEngine) Correlations(history []*types.CheckIn) map[string]float64 {
  return map[string]float64{}
}

type stubRetriever struct {
  guidance []string
}

func (s *stubRetriever) Retrieve(ctx context.Context, query string, k int) []string {
  return s.guidance
}

type stubAI struct {
  text    string
  genErr  error
  prompts []string
}

func (s *stubAI) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
  return nil, errBoom
}

func (s *stubAI) GenerateText(ctx context.Context, prompt string, maxOutputTokens int) (string, error) {
  s.prompts = append(s.prompts, prompt)
  if s.genErr != nil {
    return "", s.genErr
  }
  return s.text, nil
}

func (s *stubAI) Model() string {
  return "stub-model"
}

type spyPersonalizer struct {
  retrains int
  model    *services.RidgeModel
  err      error
}

func (s *spyPersonalizer) GetOrTrain(ctx context.Context, userID uuid.UUID, history []*types.CheckIn) (*services.RidgeModel, error) {
  return s.model, s.err
}

func (s *spyPersonalizer) Retrain(ctx context.Context, userID uuid.UUID, history []*types.CheckIn) (*services.RidgeModel, error) {
  s.retrains++
  return s.model, s.err
}

func checkInsFor(userID uuid.UUID, n int, lastDay time.Time) []*types.CheckIn {
  var out []*types.CheckIn
  for i := 0; i < n; i++ {
    out = append(out, &types.CheckIn{
      ID:           uuid.New(),
      UserID:       userID,
      Date:         repos.DayOf(lastDay).AddDate(0, 0, -i),
      SleepHours:   7.0,
      SleepQuality: 3,
      Mood:         3,
      Energy:       3,
      Stress:       2,
    })
  }
  return out
}

var _ repos.CheckInRepo = (*stubCheckInRepo)(nil)
var _ repos.WorkoutLogRepo = (*stubWorkoutRepo)(nil)
var _ repos.MealLogRepo = (*stubMealRepo)(nil)
var _ repos.AgentOutputRepo = (*spyOutputRepo)(nil)
var _ repos.AICallLogRepo = (*spyCallLogRepo)(nil)
var _ services.ReadinessEngine = (*stubEngine)(nil)
var _ services.KnowledgeRetriever = (*stubRetriever)(nil)
var _ services.AIClient = (*stubAI)(nil)
var _ services.Personalizer = (*spyPersonalizer)(nil)
