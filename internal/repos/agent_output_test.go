package repos

import (
  "context"
  "fmt"
  "testing"
  "time"

  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"

  "github.com/wellsync/wellsync-backend/internal/logger"
  "github.com/wellsync/wellsync-backend/internal/types"
)

// The production schema relies on uuid_generate_v4, which sqlite does not
// have, so the table is created by hand and rows carry explicit IDs.
const agentOutputDDL = `
CREATE TABLE agent_output (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  date DATETIME NOT NULL,
  event_type TEXT NOT NULL,
  readiness_score REAL,
  intensity TEXT,
  llm_text TEXT NOT NULL,
  model_used TEXT NOT NULL,
  created_at DATETIME NOT NULL,
  updated_at DATETIME NOT NULL,
  deleted_at DATETIME
)`

func openTestDB(t *testing.T) *gorm.DB {
  t.Helper()
  // one named in-memory database per test so schemas do not collide
  dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
  db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  // the pool must stay on the single shared in-memory connection
  sqlDB, err := db.DB()
  if err != nil {
    t.Fatalf("underlying db: %v", err)
  }
  sqlDB.SetMaxOpenConns(1)
  if err := db.Exec(agentOutputDDL).Error; err != nil {
    t.Fatalf("create table: %v", err)
  }
  return db
}

func outputAt(userID uuid.UUID, day time.Time, eventType, text string, createdAt time.Time) *types.AgentOutput {
  return &types.AgentOutput{
    ID:        uuid.New(),
    UserID:    userID,
    Date:      day,
    EventType: eventType,
    Text:      text,
    ModelUsed: "test-model",
    CreatedAt: createdAt,
    UpdatedAt: createdAt,
  }
}

func TestAgentOutputGetLatestReturnsNewest(t *testing.T) {
  db := openTestDB(t)
  repo := NewAgentOutputRepo(db, logger.NewNop())
  ctx := context.Background()

  userID := uuid.New()
  day := DayOf(time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC))
  base := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)

  rows := []*types.AgentOutput{
    outputAt(userID, day, "morning_recommendation", "first run", base),
    outputAt(userID, day, "morning_recommendation", "re-fired run", base.Add(2*time.Hour)),
    outputAt(userID, day, "evening_summary", "wrong kind", base.Add(3*time.Hour)),
    outputAt(uuid.New(), day, "morning_recommendation", "wrong user", base.Add(4*time.Hour)),
  }
  if _, err := repo.Create(ctx, nil, rows); err != nil {
    t.Fatalf("create: %v", err)
  }

  got, err := repo.GetLatest(ctx, nil, userID, day, "morning_recommendation")
  if err != nil {
    t.Fatalf("get latest: %v", err)
  }
  if got == nil || got.Text != "re-fired run" {
    t.Fatalf("got %+v, want the re-fired row", got)
  }
}

func TestAgentOutputGetLatestMissIsNilNil(t *testing.T) {
  db := openTestDB(t)
  repo := NewAgentOutputRepo(db, logger.NewNop())

  got, err := repo.GetLatest(context.Background(), nil, uuid.New(), DayOf(time.Now()), "morning_recommendation")
  if err != nil {
    t.Fatalf("miss must not error, got %v", err)
  }
  if got != nil {
    t.Fatalf("miss must be nil, got %+v", got)
  }
}

func TestAgentOutputGetByUserAndDate(t *testing.T) {
  db := openTestDB(t)
  repo := NewAgentOutputRepo(db, logger.NewNop())
  ctx := context.Background()

  userID := uuid.New()
  day := DayOf(time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC))
  otherDay := day.AddDate(0, 0, -1)
  base := time.Date(2026, 8, 21, 7, 0, 0, 0, time.UTC)

  rows := []*types.AgentOutput{
    outputAt(userID, day, "morning_recommendation", "morning", base),
    outputAt(userID, day, "evening_summary", "evening", base.Add(12*time.Hour)),
    outputAt(userID, otherDay, "morning_recommendation", "yesterday", base.AddDate(0, 0, -1)),
  }
  if _, err := repo.Create(ctx, nil, rows); err != nil {
    t.Fatalf("create: %v", err)
  }

  got, err := repo.GetByUserAndDate(ctx, nil, userID, day)
  if err != nil {
    t.Fatalf("get by user and date: %v", err)
  }
  if len(got) != 2 {
    t.Fatalf("got %d rows, want 2", len(got))
  }
  // newest first
  if got[0].Text != "evening" || got[1].Text != "morning" {
    t.Fatalf("rows out of order: %q, %q", got[0].Text, got[1].Text)
  }
}

func TestDayOf(t *testing.T) {
  in := time.Date(2026, 8, 27, 23, 59, 59, 0, time.UTC)
  got := DayOf(in)
  want := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
  if !got.Equal(want) {
    t.Fatalf("DayOf=%v, want %v", got, want)
  }
}
