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

const eveningMaxTokens = 200

const eveningFallbackText = "Great job logging your day! Rest well and aim for 7-8 hours of sleep tonight."

// EveningAgent writes a short reflective summary of today for each user who
// checked in today.
type EveningAgent struct {
  log      *logger.Logger
  checkIns repos.CheckInRepo
  workouts repos.WorkoutLogRepo
  meals    repos.MealLogRepo
  outputs  repos.AgentOutputRepo
  callLogs repos.AICallLogRepo
  ai       services.AIClient
}

func NewEveningAgent(
  baseLog *logger.Logger,
  checkIns repos.CheckInRepo,
  workouts repos.WorkoutLogRepo,
  meals repos.MealLogRepo,
  outputs repos.AgentOutputRepo,
  callLogs repos.AICallLogRepo,
  ai services.AIClient,
) *EveningAgent {
  return &EveningAgent{
    log:      baseLog.With("agent", "EveningAgent"),
    checkIns: checkIns,
    workouts: workouts,
    meals:    meals,
    outputs:  outputs,
    callLogs: callLogs,
    ai:       ai,
  }
}

func (a *EveningAgent) Handle(ctx context.Context, ev *events.WellnessEvent) error {
  for _, userID := range ev.UserIDs {
    if err := a.processUser(ctx, userID); err != nil {
      a.log.Error("Evening summary failed", "user_id", userID, "error", err)
    }
  }
  return nil
}

func (a *EveningAgent) processUser(ctx context.Context, userID uuid.UUID) error {
  today := repos.DayOf(time.Now())

  checkIn, err := a.checkIns.GetByUserAndDate(ctx, nil, userID, today)
  if err != nil {
    return err
  }
  if checkIn == nil {
    // nothing logged today: skip
    return nil
  }

  workouts, err := a.workouts.GetByUserAndDate(ctx, nil, userID, today)
  if err != nil {
    return err
  }
  meals, err := a.meals.GetByUserAndDate(ctx, nil, userID, today)
  if err != nil {
    return err
  }

  prompt := buildEveningPrompt(checkIn, workouts, meals)

  text, genErr := a.ai.GenerateText(ctx, prompt, eveningMaxTokens)
  modelUsed := a.ai.Model()
  if genErr != nil {
    a.log.Warn("Generation failed, writing fallback text", "user_id", userID, "error", genErr)
    text = eveningFallbackText
    modelUsed = types.FallbackModel
  }
  a.auditCall(ctx, userID, prompt, text, genErr)

  output := &types.AgentOutput{
    UserID:    userID,
    Date:      today,
    EventType: string(events.EveningSummary),
    Text:      text,
    ModelUsed: modelUsed,
  }
  if _, err := a.outputs.Create(ctx, nil, []*types.AgentOutput{output}); err != nil {
    return fmt.Errorf("persist evening output: %w", err)
  }
  return nil
}

func (a *EveningAgent) auditCall(ctx context.Context, userID uuid.UUID, prompt, response string, genErr error) {
  if a.callLogs == nil {
    return
  }
  entry := &types.AICallLog{
    UserID:   &userID,
    CallType: string(events.EveningSummary),
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

func buildEveningPrompt(checkIn *types.CheckIn, workouts []*types.WorkoutLog, meals []*types.MealLog) string {
  var workoutParts []string
  for _, w := range workouts {
    workoutParts = append(workoutParts, fmt.Sprintf("%s %dmin RPE=%d", w.Type, w.DurationMin, w.RPE))
  }
  workoutSummary := strings.Join(workoutParts, ", ")
  if workoutSummary == "" {
    workoutSummary = "no workout logged"
  }

  var mealParts []string
  for _, m := range meals {
    mealParts = append(mealParts, fmt.Sprintf("%s(q=%d)", m.MealType, m.Quality))
  }
  mealSummary := strings.Join(mealParts, ", ")
  if mealSummary == "" {
    mealSummary = "no meals logged"
  }

  return fmt.Sprintf(`You are WellSync evening coach. Write a 2-3 sentence evening reflection for today.

Today's data:
- Check-in: sleep=%gh, mood=%d/5, energy=%d/5, stress=%d/5
- Workouts: %s
- Meals: %s

Give one positive observation and one actionable tip for tomorrow. Be concise and encouraging.`,
    checkIn.SleepHours, checkIn.Mood, checkIn.Energy, checkIn.Stress, workoutSummary, mealSummary)
}
