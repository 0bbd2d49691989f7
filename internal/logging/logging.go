// Package logging writes one log line per HTTP request and per GraphQL
// operation by subscribing to the event bus.
package logging

import (
	"context"
	"log"

	eventbus "github.com/fetchlab/overgraph/internal/eventbus"
	events "github.com/fetchlab/overgraph/internal/events"
	reqid "github.com/fetchlab/overgraph/internal/reqid"
)

// Attach subscribes the logger to the global event bus and returns a
// function that detaches it again.
func Attach(logger *log.Logger) (detach func()) {
	if logger == nil {
		logger = log.Default()
	}
	s := &subscriber{logger: logger}

	unsubs := []func(){
		eventbus.Subscribe(s.httpFinish),
		eventbus.Subscribe(s.graphqlFinish),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

type subscriber struct {
	logger *log.Logger
}

func (s *subscriber) httpFinish(ctx context.Context, e events.HTTPFinish) {
	rid, _ := reqid.FromContext(ctx)
	s.logger.Printf("http rid=%d method=%s path=%s status=%d duration=%s",
		rid, e.Request.Method, e.Request.URL.Path, e.Status, e.Duration)
}

func (s *subscriber) graphqlFinish(ctx context.Context, e events.GraphQLFinish) {
	rid, _ := reqid.FromContext(ctx)
	name := e.OperationName
	if name == "" {
		name = "(anonymous)"
	}
	if len(e.ErrorMessages) > 0 {
		s.logger.Printf("graphql rid=%d op=%s type=%s errors=%d first_error=%q duration=%s",
			rid, name, e.OperationType, len(e.ErrorMessages), e.ErrorMessages[0], e.Duration)
		return
	}
	s.logger.Printf("graphql rid=%d op=%s type=%s errors=0 duration=%s",
		rid, name, e.OperationType, e.Duration)
}
