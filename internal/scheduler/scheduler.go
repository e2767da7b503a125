package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron"

	"github.com/wellsync/wellsync-backend/internal/events"
	"github.com/wellsync/wellsync-backend/internal/logger"
	"github.com/wellsync/wellsync-backend/internal/repos"
	"github.com/wellsync/wellsync-backend/internal/utils"
)

// Scheduler fires the three daily wellness triggers. Each firing resolves the
// full current user set into one batch event, buffers it on the queue and
// dispatches it through the gateway. Any error inside a firing is logged and
// dropped; the next scheduled firing is unaffected.
type Scheduler struct {
	log     *logger.Logger
	users   repos.UserRepo
	queue   *events.Queue
	gateway *events.Gateway
	cron    *cron.Cron
	loc     *time.Location
}

type trigger struct {
	at   string
	kind events.EventType
}

func New(baseLog *logger.Logger, users repos.UserRepo, queue *events.Queue, gateway *events.Gateway) (*Scheduler, error) {
	log := baseLog.With("component", "Scheduler")

	tzName := utils.GetEnv("SCHEDULE_TZ", "Europe/Athens", baseLog)
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tzName, err)
	}

	s := &Scheduler{
		log:     log,
		users:   users,
		queue:   queue,
		gateway: gateway,
		cron:    cron.NewWithLocation(loc),
		loc:     loc,
	}

	triggers := []trigger{
		{at: utils.GetEnv("MORNING_AT", "08:00", baseLog), kind: events.MorningRecommendation},
		{at: utils.GetEnv("EVENING_AT", "21:00", baseLog), kind: events.EveningSummary},
		{at: utils.GetEnv("RETRAIN_AT", "03:00", baseLog), kind: events.ModelRetraining},
	}
	for _, t := range triggers {
		spec, err := cronSpec(t.at)
		if err != nil {
			return nil, fmt.Errorf("trigger %s: %w", t.kind, err)
		}
		kind := t.kind
		if err := s.cron.AddFunc(spec, func() { s.fire(kind) }); err != nil {
			return nil, fmt.Errorf("register trigger %s: %w", t.kind, err)
		}
		log.Info("Registered daily trigger", "event_type", kind, "at", t.at, "tz", tzName)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// fire is the firing-level boundary: nothing it does may crash the cron loop.
func (s *Scheduler) fire(kind events.EventType) {
	ctx := context.Background()
	if err := s.FireNow(ctx, kind); err != nil {
		s.log.Error("Trigger firing failed", "event_type", kind, "error", err)
	}
}

// FireNow resolves users, enqueues and dispatches one batch event. Also the
// entry point for the manual trigger endpoint.
func (s *Scheduler) FireNow(ctx context.Context, kind events.EventType) error {
	userIDs, err := s.users.ListIDs(ctx, nil)
	if err != nil {
		return fmt.Errorf("resolve user set: %w", err)
	}
	if len(userIDs) == 0 {
		s.log.Debug("No users, skipping firing", "event_type", kind)
		return nil
	}

	ev := events.NewWellnessEvent(kind, userIDs)
	if err := s.queue.Put(ctx, ev); err != nil {
		return fmt.Errorf("enqueue event: %w", err)
	}
	if err := s.gateway.Dispatch(ctx, ev); err != nil {
		return fmt.Errorf("dispatch event: %w", err)
	}
	s.log.Info("Fired wellness event", "event_type", kind, "users", len(userIDs))
	return nil
}

// cronSpec turns "HH:MM" into a robfig/cron daily spec (seconds field first).
func cronSpec(at string) (string, error) {
	parts := strings.Split(strings.TrimSpace(at), ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("bad time %q, want HH:MM", at)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("bad hour in %q", at)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("bad minute in %q", at)
	}
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}
