package handlers

import (
  "fmt"
  "net/http"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/wellsync/wellsync-backend/internal/logger"
  "github.com/wellsync/wellsync-backend/internal/repos"
  "github.com/wellsync/wellsync-backend/internal/services"
)

const insightsWindowDays = 30

type InsightsHandler struct {
  log      *logger.Logger
  checkIns repos.CheckInRepo
  workouts repos.WorkoutLogRepo
  engine   services.ReadinessEngine
}

func NewInsightsHandler(log *logger.Logger, checkIns repos.CheckInRepo, workouts repos.WorkoutLogRepo, engine services.ReadinessEngine) *InsightsHandler {
  return &InsightsHandler{
    log:      log.With("handler", "InsightsHandler"),
    checkIns: checkIns,
    workouts: workouts,
    engine:   engine,
  }
}

type TrendPoint struct {
  Date            string    `json:"date"`
  SleepHours      float64   `json:"sleep_hours"`
  Mood            int       `json:"mood"`
  Energy          int       `json:"energy"`
  Stress          int       `json:"stress"`
  ReadinessScore  *float64  `json:"readiness_score"`
}

type WorkoutSummary struct {
  TotalSessions  int       `json:"total_sessions"`
  TotalMinutes   int       `json:"total_minutes"`
  AvgRPE         *float64  `json:"avg_rpe"`
}

type InsightsResponse struct {
  Correlations      map[string]float64  `json:"correlations"`
  Trends            []TrendPoint        `json:"trends"`
  WorkoutSummary30d WorkoutSummary      `json:"workout_summary_30d"`
  DaysLogged        int                 `json:"days_logged"`
}

// GET /api/insights?user_id=
func (h *InsightsHandler) GetInsights(c *gin.Context) {
  userID, err := uuid.Parse(c.Query("user_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_user_id", fmt.Errorf("user_id must be a uuid"))
    return
  }

  ctx := c.Request.Context()
  since := time.Now().AddDate(0, 0, -insightsWindowDays)

  checkIns, err := h.checkIns.GetSince(ctx, nil, userID, since)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "storage_error", err)
    return
  }
  workouts, err := h.workouts.GetSince(ctx, nil, userID, since)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "storage_error", err)
    return
  }

  trends := make([]TrendPoint, 0, len(checkIns))
  for _, ci := range checkIns {
    trends = append(trends, TrendPoint{
      Date:           ci.Date.Format("2006-01-02"),
      SleepHours:     ci.SleepHours,
      Mood:           ci.Mood,
      Energy:         ci.Energy,
      Stress:         ci.Stress,
      ReadinessScore: ci.ReadinessScore,
    })
  }

  summary := WorkoutSummary{TotalSessions: len(workouts)}
  if len(workouts) > 0 {
    var rpeSum int
    for _, w := range workouts {
      summary.TotalMinutes += w.DurationMin
      rpeSum += w.RPE
    }
    avg := float64(rpeSum) / float64(len(workouts))
    summary.AvgRPE = &avg
  }

  RespondOK(c, InsightsResponse{
    Correlations:      h.engine.Correlations(checkIns),
    Trends:            trends,
    WorkoutSummary30d: summary,
    DaysLogged:        len(checkIns),
  })
}
