package agents

import (
  "context"
  "testing"
  "time"

  "github.com/google/uuid"

  "github.com/wellsync/wellsync-backend/internal/events"
  "github.com/wellsync/wellsync-backend/internal/logger"
  "github.com/wellsync/wellsync-backend/internal/types"
)

func TestRetrainingSkipsShortHistory(t *testing.T) {
  checkIns := &stubCheckInRepo{byUser: map[uuid.UUID][]*types.CheckIn{}}
  personalizer := &spyPersonalizer{}
  agent := NewRetrainingAgent(logger.NewNop(), checkIns, personalizer)

  userID := uuid.New()
  checkIns.byUser[userID] = checkInsFor(userID, 13, time.Now())

  ev := events.NewWellnessEvent(events.ModelRetraining, []uuid.UUID{userID})
  if err := agent.Handle(context.Background(), ev); err != nil {
    t.Fatalf("handle: %v", err)
  }
  if personalizer.retrains != 0 {
    t.Fatalf("13 check-ins must not trigger retraining, got %d calls", personalizer.retrains)
  }
}

func TestRetrainingRefitsEligibleUsers(t *testing.T) {
  checkIns := &stubCheckInRepo{byUser: map[uuid.UUID][]*types.CheckIn{}}
  personalizer := &spyPersonalizer{}
  agent := NewRetrainingAgent(logger.NewNop(), checkIns, personalizer)

  eligible := uuid.New()
  fresh := uuid.New()
  checkIns.byUser[eligible] = checkInsFor(eligible, 14, time.Now())
  checkIns.byUser[fresh] = checkInsFor(fresh, 2, time.Now())

  ev := events.NewWellnessEvent(events.ModelRetraining, []uuid.UUID{eligible, fresh})
  if err := agent.Handle(context.Background(), ev); err != nil {
    t.Fatalf("handle: %v", err)
  }
  if personalizer.retrains != 1 {
    t.Fatalf("expected exactly one retrain, got %d", personalizer.retrains)
  }
}

func TestRetrainingSwallowsPerUserErrors(t *testing.T) {
  checkIns := &stubCheckInRepo{byUser: map[uuid.UUID][]*types.CheckIn{}}
  personalizer := &spyPersonalizer{err: errBoom}
  agent := NewRetrainingAgent(logger.NewNop(), checkIns, personalizer)

  userID := uuid.New()
  checkIns.byUser[userID] = checkInsFor(userID, 20, time.Now())

  ev := events.NewWellnessEvent(events.ModelRetraining, []uuid.UUID{userID})
  if err := agent.Handle(context.Background(), ev); err != nil {
    t.Fatalf("per-user failures must not surface, got %v", err)
  }
}
