package agent

import (
	"context"

	"github.com/shakthishetty/Interview-Prep-Ai/pkg/model"
)

type EventType string

const (
	EventCallStart   EventType = "call-start"
	EventCallEnd     EventType = "call-end"
	EventTranscript  EventType = "transcript"
	EventSpeechStart EventType = "speech-start"
	EventSpeechEnd   EventType = "speech-end"
	EventError       EventType = "error"
)

// Event is one signal from the voice agent connection.
type Event struct {
	Type EventType

	// transcript events
	Role    model.Role
	Text    string
	IsFinal bool

	// error events
	Err error
}

// StartOptions tells the voice agent how to open a call.
type StartOptions struct {
	// WorkflowID drives a question-generation call; the workflow collects
	// role/level/techstack from the candidate by voice.
	WorkflowID string

	// AssistantID is a pre-built provider assistant, used for generation
	// when no workflow is configured.
	AssistantID string

	// Questions drives a grading call: the interviewer assistant replays
	// this fixed list.
	Questions []string

	// Variables are template values passed through to the agent
	// (candidate name, user id).
	Variables map[string]string
}

// VoiceAgent is the injected voice connection. Events() delivers signals in
// arrival order; the channel is closed when the connection goes away.
type VoiceAgent interface {
	Start(ctx context.Context, opts StartOptions) error
	Stop() error
	Events() <-chan Event
}
