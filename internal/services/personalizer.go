package services

import (
  "context"
  "encoding/json"
  "fmt"
  "math"
  "sort"
  "time"

  "github.com/google/uuid"
  "gonum.org/v1/gonum/mat"
  "gorm.io/datatypes"

  "github.com/wellsync/wellsync-backend/internal/logger"
  "github.com/wellsync/wellsync-backend/internal/repos"
  "github.com/wellsync/wellsync-backend/internal/types"
)

const (
  // MinCheckInsForPersonalized gates the personalized scoring path.
  MinCheckInsForPersonalized = 14
  // minTrainingPairs gates training itself. 7 pairs need 8 check-ins, so a
  // user can pass the outer gate and still decline here.
  minTrainingPairs = 7

  featureCount = 5
  ridgeAlpha   = 1.0
)

// RidgeWeights is the persisted artifact: per-feature standardization plus
// ridge coefficients over [sleep_hours, sleep_quality, mood, energy, stress],
// predicting next-day energy.
type RidgeWeights struct {
  Means     []float64 `json:"means"`
  Scales    []float64 `json:"scales"`
  Coef      []float64 `json:"coef"`
  Intercept float64   `json:"intercept"`
  Alpha     float64   `json:"alpha"`
}

type RidgeModel struct {
  Weights RidgeWeights
}

func (m *RidgeModel) Predict(features []float64) (float64, error) {
  w := m.Weights
  if len(features) != len(w.Coef) || len(features) != len(w.Means) || len(features) != len(w.Scales) {
    return 0, fmt.Errorf("feature vector has %d values, model expects %d", len(features), len(w.Coef))
  }
  pred := w.Intercept
  for i, x := range features {
    scale := w.Scales[i]
    if scale == 0 {
      scale = 1
    }
    pred += w.Coef[i] * ((x - w.Means[i]) / scale)
  }
  return pred, nil
}

// Personalizer owns the per-user model lifecycle: train, persist, load,
// full-refit retrain. Insufficient history never errors, it yields no model.
type Personalizer interface {
  GetOrTrain(ctx context.Context, userID uuid.UUID, history []*types.CheckIn) (*RidgeModel, error)
  Retrain(ctx context.Context, userID uuid.UUID, history []*types.CheckIn) (*RidgeModel, error)
}

type personalizer struct {
  log       *logger.Logger
  modelRepo repos.PersonalModelRepo
}

func NewPersonalizer(baseLog *logger.Logger, modelRepo repos.PersonalModelRepo) Personalizer {
  return &personalizer{
    log:       baseLog.With("service", "Personalizer"),
    modelRepo: modelRepo,
  }
}

func (p *personalizer) GetOrTrain(ctx context.Context, userID uuid.UUID, history []*types.CheckIn) (*RidgeModel, error) {
  stored, err := p.modelRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, err
  }
  if stored != nil {
    var w RidgeWeights
    if uErr := json.Unmarshal(stored.Weights, &w); uErr == nil {
      return &RidgeModel{Weights: w}, nil
    }
    // unreadable artifact: fall through to a fresh fit which overwrites it
    p.log.Warn("Stored model artifact is unreadable, refitting", "user_id", userID)
  }
  return p.train(ctx, userID, history)
}

func (p *personalizer) Retrain(ctx context.Context, userID uuid.UUID, history []*types.CheckIn) (*RidgeModel, error) {
  return p.train(ctx, userID, history)
}

func (p *personalizer) train(ctx context.Context, userID uuid.UUID, history []*types.CheckIn) (*RidgeModel, error) {
  X, y := BuildTrainingPairs(history)
  if len(X) < minTrainingPairs {
    p.log.Debug("Not enough training pairs, declining to train", "user_id", userID, "pairs", len(X))
    return nil, nil
  }

  weights, err := fitRidge(X, y, ridgeAlpha)
  if err != nil {
    return nil, fmt.Errorf("ridge fit for user %s: %w", userID, err)
  }

  raw, err := json.Marshal(weights)
  if err != nil {
    return nil, err
  }
  artifact := &types.PersonalModel{
    UserID:    userID,
    Weights:   datatypes.JSON(raw),
    Samples:   len(X),
    TrainedAt: time.Now().UTC(),
  }
  if err := p.modelRepo.Upsert(ctx, nil, artifact); err != nil {
    return nil, fmt.Errorf("persist model for user %s: %w", userID, err)
  }
  p.log.Info("Trained personalized model", "user_id", userID, "pairs", len(X))

  return &RidgeModel{Weights: weights}, nil
}

// BuildTrainingPairs turns a check-in history into (features of day t,
// energy of day t+1) pairs, ordered by date ascending.
func BuildTrainingPairs(history []*types.CheckIn) ([][]float64, []float64) {
  sorted := make([]*types.CheckIn, len(history))
  copy(sorted, history)
  sort.Slice(sorted, func(i, j int) bool {
    return sorted[i].Date.Before(sorted[j].Date)
  })

  var X [][]float64
  var y []float64
  for i := 0; i+1 < len(sorted); i++ {
    c := sorted[i]
    X = append(X, FeatureVector(c))
    y = append(y, float64(sorted[i+1].Energy))
  }
  return X, y
}

func FeatureVector(c *types.CheckIn) []float64 {
  return []float64{
    c.SleepHours,
    float64(c.SleepQuality),
    float64(c.Mood),
    float64(c.Energy),
    float64(c.Stress),
  }
}

// fitRidge standardizes the features, then solves the ridge normal equations
// (ZᵀZ + αI)β = Zᵀ(y - ȳ) with an unpenalized intercept of ȳ.
func fitRidge(X [][]float64, y []float64, alpha float64) (RidgeWeights, error) {
  n := len(X)
  p := featureCount
  if n == 0 || len(X[0]) != p {
    return RidgeWeights{}, fmt.Errorf("bad training matrix %dx%d", n, len(X[0]))
  }

  means := make([]float64, p)
  scales := make([]float64, p)
  for j := 0; j < p; j++ {
    var sum float64
    for i := 0; i < n; i++ {
      sum += X[i][j]
    }
    means[j] = sum / float64(n)
    var ss float64
    for i := 0; i < n; i++ {
      d := X[i][j] - means[j]
      ss += d * d
    }
    scales[j] = math.Sqrt(ss / float64(n))
    if scales[j] == 0 {
      // constant column: centered values are all zero either way
      scales[j] = 1
    }
  }

  z := mat.NewDense(n, p, nil)
  for i := 0; i < n; i++ {
    for j := 0; j < p; j++ {
      z.Set(i, j, (X[i][j]-means[j])/scales[j])
    }
  }

  var yMean float64
  for _, v := range y {
    yMean += v
  }
  yMean /= float64(n)
  yc := mat.NewVecDense(n, nil)
  for i, v := range y {
    yc.SetVec(i, v-yMean)
  }

  var a mat.Dense
  a.Mul(z.T(), z)
  for j := 0; j < p; j++ {
    a.Set(j, j, a.At(j, j)+alpha)
  }

  var atb mat.VecDense
  atb.MulVec(z.T(), yc)

  var beta mat.VecDense
  if err := beta.SolveVec(&a, &atb); err != nil {
    return RidgeWeights{}, fmt.Errorf("solve normal equations: %w", err)
  }

  coef := make([]float64, p)
  for j := 0; j < p; j++ {
    coef[j] = beta.AtVec(j)
  }

  return RidgeWeights{
    Means:     means,
    Scales:    scales,
    Coef:      coef,
    Intercept: yMean,
    Alpha:     alpha,
  }, nil
}
