package handlers

import (
  "errors"
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/wellsync/wellsync-backend/internal/events"
  "github.com/wellsync/wellsync-backend/internal/logger"
  "github.com/wellsync/wellsync-backend/internal/scheduler"
)

type EventTriggerHandler struct {
  log       *logger.Logger
  scheduler *scheduler.Scheduler
}

func NewEventTriggerHandler(log *logger.Logger, sched *scheduler.Scheduler) *EventTriggerHandler {
  return &EventTriggerHandler{
    log:       log.With("handler", "EventTriggerHandler"),
    scheduler: sched,
  }
}

type triggerRequest struct {
  Type string `json:"type" binding:"required"`
}

// POST /api/events/trigger
// Fires one event immediately, outside the daily schedule.
func (h *EventTriggerHandler) Trigger(c *gin.Context) {
  var req triggerRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }

  kind := events.EventType(req.Type)
  if !kind.Valid() {
    RespondError(c, http.StatusBadRequest, "bad_event_type", fmt.Errorf("unknown event type %q", req.Type))
    return
  }

  if err := h.scheduler.FireNow(c.Request.Context(), kind); err != nil {
    if errors.Is(err, events.ErrNoHandler) {
      RespondError(c, http.StatusConflict, "no_handler", err)
      return
    }
    RespondError(c, http.StatusInternalServerError, "firing_failed", err)
    return
  }

  c.JSON(http.StatusAccepted, gin.H{"status": "fired", "type": req.Type})
}
