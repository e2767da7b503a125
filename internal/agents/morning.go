package agents

import (
  "context"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"

  "github.com/wellsync/wellsync-backend/internal/events"
  "github.com/wellsync/wellsync-backend/internal/logger"
  "github.com/wellsync/wellsync-backend/internal/repos"
  "github.com/wellsync/wellsync-backend/internal/services"
  "github.com/wellsync/wellsync-backend/internal/types"
)

const (
  morningHistoryDays  = 14
  morningWorkoutLimit = 7
  morningMaxTokens    = 300
)

// MorningAgent turns a morning trigger into one persisted recommendation per
// user: readiness score, intensity label, retrieved guidance and generated
// text, with a deterministic fallback when generation fails.
type MorningAgent struct {
  log         *logger.Logger
  checkIns    repos.CheckInRepo
  workouts    repos.WorkoutLogRepo
  outputs     repos.AgentOutputRepo
  callLogs    repos.AICallLogRepo
  engine      services.ReadinessEngine
  retriever   services.KnowledgeRetriever
  ai          services.AIClient
}

func NewMorningAgent(
  baseLog *logger.Logger,
  checkIns repos.CheckInRepo,
  workouts repos.WorkoutLogRepo,
  outputs repos.AgentOutputRepo,
  callLogs repos.AICallLogRepo,
  engine services.ReadinessEngine,
  retriever services.KnowledgeRetriever,
  ai services.AIClient,
) *MorningAgent {
  return &MorningAgent{
    log:       baseLog.With("agent", "MorningAgent"),
    checkIns:  checkIns,
    workouts:  workouts,
    outputs:   outputs,
    callLogs:  callLogs,
    engine:    engine,
    retriever: retriever,
    ai:        ai,
  }
}

func (a *MorningAgent) Handle(ctx context.Context, ev *events.WellnessEvent) error {
  for _, userID := range ev.UserIDs {
    if err := a.processUser(ctx, userID); err != nil {
      // one bad user must not abort the rest of the batch
      a.log.Error("Morning recommendation failed", "user_id", userID, "error", err)
    }
  }
  return nil
}

func (a *MorningAgent) processUser(ctx context.Context, userID uuid.UUID) error {
  checkIns, err := a.checkIns.GetRecentByUserID(ctx, nil, userID, morningHistoryDays)
  if err != nil {
    return err
  }
  if len(checkIns) == 0 {
    // no data yet: clean skip, no record
    return nil
  }
  latest := checkIns[0]

  readiness, err := a.engine.Compute(ctx, userID, latest)
  if err != nil {
    return err
  }
  intensity := IntensityLabel(readiness)

  workouts, err := a.workouts.GetRecentByUserID(ctx, nil, userID, morningWorkoutLimit)
  if err != nil {
    return err
  }

  query := fmt.Sprintf("readiness %.1f sleep %gh energy %d stress %d",
    readiness, latest.SleepHours, latest.Energy, latest.Stress)
  guidance := a.retriever.Retrieve(ctx, query, services.DefaultTopK)

  prompt := buildMorningPrompt(reverseCheckIns(checkIns), reverseWorkouts(workouts), readiness, intensity, guidance)

  text, genErr := a.ai.GenerateText(ctx, prompt, morningMaxTokens)
  modelUsed := a.ai.Model()
  if genErr != nil {
    a.log.Warn("Generation failed, writing fallback text", "user_id", userID, "error", genErr)
    text = fmt.Sprintf("[ML-only] Readiness %s/10. Suggested intensity: %s.", formatScore(readiness), intensity)
    modelUsed = types.FallbackModel
  }
  a.auditCall(ctx, userID, prompt, text, genErr)

  output := &types.AgentOutput{
    UserID:         userID,
    Date:           repos.DayOf(time.Now()),
    EventType:      string(events.MorningRecommendation),
    ReadinessScore: &readiness,
    Intensity:      &intensity,
    Text:           text,
    ModelUsed:      modelUsed,
  }
  if _, err := a.outputs.Create(ctx, nil, []*types.AgentOutput{output}); err != nil {
    return fmt.Errorf("persist morning output: %w", err)
  }
  return nil
}

func (a *MorningAgent) auditCall(ctx context.Context, userID uuid.UUID, prompt, response string, genErr error) {
  if a.callLogs == nil {
    return
  }
  entry := &types.AICallLog{
    UserID:   &userID,
    CallType: string(events.MorningRecommendation),
    Model:    a.ai.Model(),
    Prompt:   prompt,
    Response: response,
    Success:  genErr == nil,
  }
  if genErr != nil {
    entry.Error = genErr.Error()
  }
  if _, err := a.callLogs.Create(ctx, nil, []*types.AICallLog{entry}); err != nil {
    a.log.Warn("AI call audit write failed", "user_id", userID, "error", err)
  }
}

func buildMorningPrompt(checkIns []*types.CheckIn, workouts []*types.WorkoutLog, readiness float64, intensity string, guidance []string) string {
  var checkInLines []string
  start := 0
  if len(checkIns) > 7 {
    start = len(checkIns) - 7
  }
  for _, c := range checkIns[start:] {
    checkInLines = append(checkInLines, fmt.Sprintf(
      "  %s: sleep=%gh(quality %d/5), mood=%d/5, energy=%d/5, stress=%d/5",
      c.Date.Format("2006-01-02"), c.SleepHours, c.SleepQuality, c.Mood, c.Energy, c.Stress))
  }

  var workoutLines []string
  for _, w := range workouts {
    workoutLines = append(workoutLines, fmt.Sprintf(
      "  %s: %s %dmin RPE=%d", w.Date.Format("2006-01-02"), w.Type, w.DurationMin, w.RPE))
  }
  workoutSection := strings.Join(workoutLines, "\n")
  if workoutSection == "" {
    workoutSection = "  No workouts logged this week."
  }

  ragSection := "N/A"
  if len(guidance) > 0 {
    var bullets []string
    for _, g := range guidance {
      bullets = append(bullets, "- "+g)
    }
    ragSection = strings.Join(bullets, "\n")
  }

  return fmt.Sprintf(`You are WellSync, an AI wellness coach. Generate a concise, friendly morning recommendation.

User data (last 7 days):
Check-ins:
%s
Workouts:
%s

Today's readiness score: %s/10
Suggested workout intensity: %s

Evidence-based guidelines (retrieved):
%s

Write a short (3-4 sentences) personalised morning recommendation covering:
1. Workout suggestion for today based on readiness
2. One nutrition tip
3. One sleep/stress tip

Be warm, specific, and actionable. Do not repeat the raw numbers.`,
    strings.Join(checkInLines, "\n"), workoutSection, formatScore(readiness), intensity, ragSection)
}

func reverseCheckIns(in []*types.CheckIn) []*types.CheckIn {
  out := make([]*types.CheckIn, len(in))
  for i, c := range in {
    out[len(in)-1-i] = c
  }
  return out
}

func reverseWorkouts(in []*types.WorkoutLog) []*types.WorkoutLog {
  out := make([]*types.WorkoutLog, len(in))
  for i, w := range in {
    out[len(in)-1-i] = w
  }
  return out
}
