package handlers

import (
  "fmt"
  "net/http"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/wellsync/wellsync-backend/internal/agents"
  redisclient "github.com/wellsync/wellsync-backend/internal/clients/redis"
  "github.com/wellsync/wellsync-backend/internal/events"
  "github.com/wellsync/wellsync-backend/internal/logger"
  "github.com/wellsync/wellsync-backend/internal/repos"
  "github.com/wellsync/wellsync-backend/internal/services"
)

type RecommendationHandler struct {
  log      *logger.Logger
  outputs  repos.AgentOutputRepo
  checkIns repos.CheckInRepo
  engine   services.ReadinessEngine
  cache    *redisclient.Cache
}

func NewRecommendationHandler(
  log *logger.Logger,
  outputs repos.AgentOutputRepo,
  checkIns repos.CheckInRepo,
  engine services.ReadinessEngine,
  cache *redisclient.Cache,
) *RecommendationHandler {
  return &RecommendationHandler{
    log:      log.With("handler", "RecommendationHandler"),
    outputs:  outputs,
    checkIns: checkIns,
    engine:   engine,
    cache:    cache,
  }
}

type RecommendationResponse struct {
  Date            string    `json:"date"`
  ReadinessScore  *float64  `json:"readiness_score"`
  Intensity       *string   `json:"intensity"`
  Recommendation  string    `json:"recommendation"`
  // "agent" | "ml_fallback" | "no_data"
  Source          string    `json:"source"`
}

// GET /api/recommendations/today?user_id=
// Primary source: most recent morning agent output for today. Fallback: an
// ML-only readiness response from the latest check-in.
func (h *RecommendationHandler) GetToday(c *gin.Context) {
  userID, err := uuid.Parse(c.Query("user_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_user_id", fmt.Errorf("user_id must be a uuid"))
    return
  }

  ctx := c.Request.Context()
  today := repos.DayOf(time.Now())
  cacheKey := fmt.Sprintf("rec:today:%s:%s", userID, today.Format("2006-01-02"))

  var cached RecommendationResponse
  if h.cache.GetJSON(ctx, cacheKey, &cached) {
    RespondOK(c, cached)
    return
  }

  output, err := h.outputs.GetLatest(ctx, nil, userID, today, string(events.MorningRecommendation))
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "storage_error", err)
    return
  }
  if output != nil {
    resp := RecommendationResponse{
      Date:           today.Format("2006-01-02"),
      ReadinessScore: output.ReadinessScore,
      Intensity:      output.Intensity,
      Recommendation: output.Text,
      Source:         "agent",
    }
    h.cache.SetJSON(ctx, cacheKey, resp)
    RespondOK(c, resp)
    return
  }

  recent, err := h.checkIns.GetRecentByUserID(ctx, nil, userID, 1)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "storage_error", err)
    return
  }
  if len(recent) == 0 {
    RespondOK(c, RecommendationResponse{
      Date:           today.Format("2006-01-02"),
      Recommendation: "Log your first check-in to get personalised recommendations!",
      Source:         "no_data",
    })
    return
  }

  score, err := h.engine.Compute(ctx, userID, recent[0])
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "scoring_error", err)
    return
  }
  intensity := agents.IntensityLabel(score)
  resp := RecommendationResponse{
    Date:           today.Format("2006-01-02"),
    ReadinessScore: &score,
    Intensity:      &intensity,
    Recommendation: fmt.Sprintf(
      "Your readiness score is %.2f/10 — suggesting %s activity today. "+
        "Your personalised AI recommendation will be ready after your morning check-in is processed.",
      score, intensity),
    Source: "ml_fallback",
  }
  h.cache.SetJSON(ctx, cacheKey, resp)
  RespondOK(c, resp)
}
