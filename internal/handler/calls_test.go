package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/shakthishetty/Interview-Prep-Ai/internal/agent"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/feedback"
	"go.uber.org/zap"
)

type noopAgent struct {
	events chan agent.Event
}

func newNoopAgent() *noopAgent {
	return &noopAgent{events: make(chan agent.Event, 1)}
}

func (a *noopAgent) Start(ctx context.Context, opts agent.StartOptions) error { return nil }
func (a *noopAgent) Stop() error                                              { return nil }
func (a *noopAgent) Events() <-chan agent.Event                               { return a.events }

type noopGenerator struct{}

func (noopGenerator) Generate(ctx context.Context, params feedback.CreateFeedbackParams) (string, error) {
	return "fb-1", nil
}

func newTestController() *agent.Controller {
	cfg := agent.Config{Mode: agent.ModeInterview, UserID: "u1", Questions: []string{"q"}}
	return agent.NewController(cfg, newNoopAgent(), noopGenerator{}, zap.NewNop())
}

func TestCallRegistry_OneLiveAttemptPerUser(t *testing.T) {
	reg := NewCallRegistry(func() agent.VoiceAgent { return newNoopAgent() })

	first := newTestController()
	id, err := reg.add("u1", first, func() {})
	if err != nil {
		t.Fatal(err)
	}
	if reg.get(id) == nil {
		t.Fatal("registered attempt not retrievable")
	}

	if _, err := reg.add("u1", newTestController(), func() {}); !errors.Is(err, errCallInProgress) {
		t.Fatalf("second add error = %v, want errCallInProgress", err)
	}

	// a different user is unaffected
	if _, err := reg.add("u2", newTestController(), func() {}); err != nil {
		t.Fatalf("other user blocked: %v", err)
	}
}

func TestCallRegistry_FinishedAttemptIsReplaced(t *testing.T) {
	reg := NewCallRegistry(func() agent.VoiceAgent { return newNoopAgent() })

	first := newTestController()
	if err := first.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	firstID, err := reg.add("u1", first, func() {})
	if err != nil {
		t.Fatal(err)
	}

	first.Disconnect(context.Background())
	<-first.Done()

	secondID, err := reg.add("u1", newTestController(), func() {})
	if err != nil {
		t.Fatalf("finished attempt should be replaceable: %v", err)
	}
	if reg.get(firstID) != nil {
		t.Error("finished attempt still registered")
	}
	if reg.get(secondID) == nil {
		t.Error("replacement attempt not retrievable")
	}
}

func TestCallRegistry_RemoveClearsUserSlot(t *testing.T) {
	reg := NewCallRegistry(func() agent.VoiceAgent { return newNoopAgent() })

	id, err := reg.add("u1", newTestController(), func() {})
	if err != nil {
		t.Fatal(err)
	}
	reg.remove(id)

	if reg.get(id) != nil {
		t.Error("removed attempt still retrievable")
	}
	if _, err := reg.add("u1", newTestController(), func() {}); err != nil {
		t.Errorf("user slot not freed after remove: %v", err)
	}
}
