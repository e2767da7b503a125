package agents

import (
  "context"

  "github.com/google/uuid"

  "github.com/wellsync/wellsync-backend/internal/events"
  "github.com/wellsync/wellsync-backend/internal/logger"
  "github.com/wellsync/wellsync-backend/internal/repos"
  "github.com/wellsync/wellsync-backend/internal/services"
)

// RetrainingAgent refits each eligible user's model from full current
// history. No output record; the only side effect is the persisted artifact.
type RetrainingAgent struct {
  log          *logger.Logger
  checkIns     repos.CheckInRepo
  personalizer services.Personalizer
}

func NewRetrainingAgent(baseLog *logger.Logger, checkIns repos.CheckInRepo, personalizer services.Personalizer) *RetrainingAgent {
  return &RetrainingAgent{
    log:          baseLog.With("agent", "RetrainingAgent"),
    checkIns:     checkIns,
    personalizer: personalizer,
  }
}

func (a *RetrainingAgent) Handle(ctx context.Context, ev *events.WellnessEvent) error {
  for _, userID := range ev.UserIDs {
    if err := a.processUser(ctx, userID); err != nil {
      a.log.Error("Retraining failed", "user_id", userID, "error", err)
    }
  }
  return nil
}

func (a *RetrainingAgent) processUser(ctx context.Context, userID uuid.UUID) error {
  history, err := a.checkIns.GetAllByUserID(ctx, nil, userID)
  if err != nil {
    return err
  }
  if len(history) < services.MinCheckInsForPersonalized {
    return nil
  }
  _, err = a.personalizer.Retrain(ctx, userID, history)
  return err
}
