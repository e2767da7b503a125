package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/wellsync/wellsync-backend/internal/logger"
)

// ErrNoHandler is returned by Dispatch for an event kind nothing registered.
var ErrNoHandler = errors.New("no handler registered for event type")

// Handler is an agent's entry point.
type Handler interface {
	Handle(ctx context.Context, ev *WellnessEvent) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, ev *WellnessEvent) error

func (f HandlerFunc) Handle(ctx context.Context, ev *WellnessEvent) error {
	return f(ctx, ev)
}

// Gateway maps each event kind to exactly one handler. Registration is
// last-wins; dispatch propagates whatever the handler returns and converts
// handler panics into errors so a bad firing cannot kill the scheduler loop.
type Gateway struct {
	log    *logger.Logger
	routes map[EventType]Handler
}

func NewGateway(baseLog *logger.Logger) *Gateway {
	return &Gateway{
		log:    baseLog.With("component", "EventGateway"),
		routes: make(map[EventType]Handler),
	}
}

func (g *Gateway) Register(t EventType, h Handler) {
	g.routes[t] = h
}

func (g *Gateway) Dispatch(ctx context.Context, ev *WellnessEvent) (err error) {
	handler, ok := g.routes[ev.Type]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, ev.Type)
	}

	defer func() {
		if r := recover(); r != nil {
			g.log.Error("Handler panic", "event_type", ev.Type, "panic", r)
			err = fmt.Errorf("handler panic for %s: %v", ev.Type, r)
		}
	}()

	return handler.Handle(ctx, ev)
}
