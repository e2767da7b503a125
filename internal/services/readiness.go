package services

import (
  "context"
  "math"
  "sort"

  "github.com/google/uuid"
  "gonum.org/v1/gonum/stat"

  "github.com/wellsync/wellsync-backend/internal/logger"
  "github.com/wellsync/wellsync-backend/internal/repos"
  "github.com/wellsync/wellsync-backend/internal/types"
)

// Cold-start weights. Stress enters inverted (6 - stress).
const (
  weightSleep  = 0.35
  weightMood   = 0.25
  weightEnergy = 0.25
  weightStress = 0.15
)

const minCheckInsForCorrelations = 5

// ReadinessEngine produces a readiness score in [1.0, 10.0] for a user's
// check-in, transitioning from the deterministic cold-start formula to the
// per-user model once enough history exists.
type ReadinessEngine interface {
  Compute(ctx context.Context, userID uuid.UUID, current *types.CheckIn) (float64, error)
  Correlations(history []*types.CheckIn) map[string]float64
}

type readinessEngine struct {
  log          *logger.Logger
  checkInRepo  repos.CheckInRepo
  personalizer Personalizer
}

func NewReadinessEngine(baseLog *logger.Logger, checkInRepo repos.CheckInRepo, personalizer Personalizer) ReadinessEngine {
  return &readinessEngine{
    log:          baseLog.With("service", "ReadinessEngine"),
    checkInRepo:  checkInRepo,
    personalizer: personalizer,
  }
}

// ColdStartScore is the deterministic population-level formula. Pure.
func ColdStartScore(c *types.CheckIn) float64 {
  sleepNorm := (c.SleepHours / 8.0) * 5.0
  if sleepNorm > 5.0 {
    sleepNorm = 5.0
  }
  stressInv := float64(6 - c.Stress)
  score := weightSleep*sleepNorm +
    weightMood*float64(c.Mood) +
    weightEnergy*float64(c.Energy) +
    weightStress*stressInv
  // weighted sum lands in [1,5]; scale to [1,10]
  return round2(clamp(score*2, 1.0, 10.0))
}

func (e *readinessEngine) Compute(ctx context.Context, userID uuid.UUID, current *types.CheckIn) (float64, error) {
  history, err := e.checkInRepo.GetAllByUserID(ctx, nil, userID)
  if err != nil {
    return 0, err
  }
  if len(history) < MinCheckInsForPersonalized {
    return ColdStartScore(current), nil
  }

  model, err := e.personalizer.GetOrTrain(ctx, userID, history)
  if err != nil {
    e.log.Warn("Model load/train failed, using cold-start score", "user_id", userID, "error", err)
    return ColdStartScore(current), nil
  }
  if model == nil {
    return ColdStartScore(current), nil
  }

  pred, err := model.Predict(FeatureVector(current))
  if err != nil {
    e.log.Warn("Model prediction failed, using cold-start score", "user_id", userID, "error", err)
    return ColdStartScore(current), nil
  }
  // pred is next-day energy (~1-5); scale to [1,10] like the cold start
  return round2(clamp(pred*2, 1.0, 10.0)), nil
}

// Correlations returns Pearson correlations between check-in dimensions for
// dashboard display. Pairs with zero variance report 0.0.
func (e *readinessEngine) Correlations(history []*types.CheckIn) map[string]float64 {
  if len(history) < minCheckInsForCorrelations {
    return map[string]float64{}
  }

  sorted := make([]*types.CheckIn, len(history))
  copy(sorted, history)
  sort.Slice(sorted, func(i, j int) bool {
    return sorted[i].Date.Before(sorted[j].Date)
  })

  n := len(sorted)
  sleep := make([]float64, n)
  mood := make([]float64, n)
  energy := make([]float64, n)
  stress := make([]float64, n)
  for i, c := range sorted {
    sleep[i] = c.SleepHours
    mood[i] = float64(c.Mood)
    energy[i] = float64(c.Energy)
    stress[i] = float64(c.Stress)
  }

  return map[string]float64{
    "sleep_mood":    safeCorr(sleep, mood),
    "sleep_energy":  safeCorr(sleep, energy),
    "stress_energy": safeCorr(stress, energy),
    "mood_energy":   safeCorr(mood, energy),
  }
}

func safeCorr(a, b []float64) float64 {
  if stat.Variance(a, nil) == 0 || stat.Variance(b, nil) == 0 {
    return 0.0
  }
  return round3(stat.Correlation(a, b, nil))
}

func clamp(v, lo, hi float64) float64 {
  if v < lo {
    return lo
  }
  if v > hi {
    return hi
  }
  return v
}

func round2(v float64) float64 {
  return math.Round(v*100) / 100
}

func round3(v float64) float64 {
  return math.Round(v*1000) / 1000
}
