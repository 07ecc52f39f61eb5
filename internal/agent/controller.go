package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shakthishetty/Interview-Prep-Ai/internal/feedback"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/metrics"
	"github.com/shakthishetty/Interview-Prep-Ai/pkg/model"
	"go.uber.org/zap"
)

type Status string

const (
	StatusInactive   Status = "inactive"
	StatusConnecting Status = "connecting"
	StatusActive     Status = "active"
	StatusFinished   Status = "finished"
)

type Mode string

const (
	// ModeGenerate produces a new interview via the voice workflow.
	ModeGenerate Mode = "generate"
	// ModeInterview replays a fixed question list and grades the result.
	ModeInterview Mode = "interview"
)

// ErrNotConfigured means a start precondition was not met; the attempt
// stays inactive.
var ErrNotConfigured = errors.New("attempt not configured")

var ErrAlreadyStarted = errors.New("attempt already started")

// FeedbackCreator grades a finished transcript.
type FeedbackCreator interface {
	Generate(ctx context.Context, params feedback.CreateFeedbackParams) (string, error)
}

type Config struct {
	Mode        Mode
	InterviewID string
	UserID      string
	UserName    string
	Questions   []string
	WorkflowID  string
	AssistantID string
}

// Outcome is the terminal result of an attempt. Navigation is the caller's
// job; the controller only says where to go.
type Outcome struct {
	Redirect   string `json:"redirect"`
	FeedbackID string `json:"feedback_id,omitempty"`
}

// Snapshot is a point-in-time view of a live attempt for status polling.
type Snapshot struct {
	Status      Status   `json:"status"`
	IsSpeaking  bool     `json:"is_speaking"`
	LastMessage string   `json:"last_message,omitempty"`
	Transcript  int      `json:"transcript_length"`
	Outcome     *Outcome `json:"outcome,omitempty"`
}

// Controller owns the lifecycle of one live interview attempt: it tracks the
// call state, accumulates the transcript, and on completion decides between
// question generation and grading.
type Controller struct {
	cfg Config
	va  VoiceAgent
	gen FeedbackCreator
	log *zap.SugaredLogger

	mu         sync.Mutex
	status     Status
	transcript []model.TranscriptEntry
	isSpeaking bool
	finished   bool
	outcome    *Outcome
	// counted is set while this attempt holds a CallsActive increment, so
	// resets and finishes decrement at most once between starts.
	counted bool

	done chan struct{}
	quit chan struct{}
}

func NewController(cfg Config, va VoiceAgent, gen FeedbackCreator, log *zap.Logger) *Controller {
	return &Controller{
		cfg:    cfg,
		va:     va,
		gen:    gen,
		log:    log.Sugar(),
		status: StatusInactive,
		done:   make(chan struct{}),
		quit:   make(chan struct{}),
	}
}

// Start validates the attempt configuration, opens the call, and begins
// consuming voice agent events. On a precondition failure the state stays
// Inactive and ErrNotConfigured is returned.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.status != StatusInactive {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}

	opts, err := c.startOptions()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.status = StatusConnecting
	c.mu.Unlock()

	if err := c.va.Start(ctx, opts); err != nil {
		c.mu.Lock()
		c.status = StatusInactive
		c.mu.Unlock()
		return fmt.Errorf("start voice agent: %w", err)
	}

	metrics.CallsTotal.WithLabelValues(string(c.cfg.Mode)).Inc()
	metrics.CallsActive.Inc()
	c.mu.Lock()
	c.counted = true
	c.mu.Unlock()

	go c.run(ctx)
	return nil
}

func (c *Controller) startOptions() (StartOptions, error) {
	switch c.cfg.Mode {
	case ModeGenerate:
		if c.cfg.WorkflowID == "" && c.cfg.AssistantID == "" {
			return StartOptions{}, fmt.Errorf("%w: a workflow or assistant id is required for generation", ErrNotConfigured)
		}
		return StartOptions{
			WorkflowID:  c.cfg.WorkflowID,
			AssistantID: c.cfg.AssistantID,
			Variables: map[string]string{
				"username": c.cfg.UserName,
				"userid":   c.cfg.UserID,
			},
		}, nil
	case ModeInterview:
		if len(c.cfg.Questions) == 0 {
			return StartOptions{}, fmt.Errorf("%w: questions are required for an interview", ErrNotConfigured)
		}
		return StartOptions{
			Questions: c.cfg.Questions,
			Variables: map[string]string{
				"username": c.cfg.UserName,
			},
		}, nil
	default:
		return StartOptions{}, fmt.Errorf("%w: unknown mode %q", ErrNotConfigured, c.cfg.Mode)
	}
}

// run consumes voice agent events until the attempt finishes or the context
// is canceled.
func (c *Controller) run(ctx context.Context) {
	events := c.va.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				// connection gone; treat as call end
				c.finish(ctx)
				return
			}
			if c.handle(ctx, ev) {
				return
			}
		case <-c.quit:
			return
		case <-ctx.Done():
			_ = c.va.Stop()
			c.finish(context.WithoutCancel(ctx))
			return
		}
	}
}

// handle processes one event; it reports whether the attempt is over.
func (c *Controller) handle(ctx context.Context, ev Event) bool {
	switch ev.Type {
	case EventCallStart:
		c.mu.Lock()
		if c.status == StatusConnecting {
			c.status = StatusActive
		}
		c.mu.Unlock()

	case EventTranscript:
		// only finalized chunks become transcript entries
		if !ev.IsFinal {
			return false
		}
		c.mu.Lock()
		if c.status == StatusActive {
			c.transcript = append(c.transcript, model.TranscriptEntry{Role: ev.Role, Content: ev.Text})
		}
		c.mu.Unlock()

	case EventSpeechStart:
		c.mu.Lock()
		c.isSpeaking = true
		c.mu.Unlock()

	case EventSpeechEnd:
		c.mu.Lock()
		c.isSpeaking = false
		c.mu.Unlock()

	case EventError:
		c.log.Errorw("voice agent error", "err", ev.Err)
		metrics.CallErrors.Inc()
		c.mu.Lock()
		if c.finished {
			c.mu.Unlock()
			return false
		}
		// forced reset: discard the attempt in progress; the controller can
		// be started again
		c.status = StatusInactive
		c.transcript = nil
		c.isSpeaking = false
		dec := c.counted
		c.counted = false
		c.mu.Unlock()
		_ = c.va.Stop()
		if dec {
			metrics.CallsActive.Dec()
		}
		return true

	case EventCallEnd:
		c.finish(ctx)
		return true
	}
	return false
}

// Disconnect stops the voice agent and finishes the attempt immediately,
// regardless of the current call state.
func (c *Controller) Disconnect(ctx context.Context) {
	if err := c.va.Stop(); err != nil {
		c.log.Warnw("voice agent stop failed", "err", err)
	}
	c.finish(ctx)
}

// finish transitions to Finished exactly once and runs terminal dispatch.
func (c *Controller) finish(ctx context.Context) {
	c.mu.Lock()
	if c.finished {
		c.mu.Unlock()
		return
	}
	c.finished = true
	c.status = StatusFinished
	c.isSpeaking = false
	dec := c.counted
	c.counted = false
	transcript := make([]model.TranscriptEntry, len(c.transcript))
	copy(transcript, c.transcript)
	c.mu.Unlock()

	if dec {
		metrics.CallsActive.Dec()
	}
	outcome := c.dispatch(ctx, transcript)

	c.mu.Lock()
	c.outcome = &outcome
	c.mu.Unlock()

	close(c.quit)
	close(c.done)
}

// dispatch decides what happens after the call ends: generation attempts go
// home, grading attempts produce feedback when there is anything to grade.
func (c *Controller) dispatch(ctx context.Context, transcript []model.TranscriptEntry) Outcome {
	home := Outcome{Redirect: "/"}

	if c.cfg.Mode == ModeGenerate {
		return home
	}

	if len(transcript) == 0 {
		c.log.Warnw("no transcript accumulated, skipping feedback", "interview_id", c.cfg.InterviewID)
		return home
	}
	if c.cfg.InterviewID == "" || c.cfg.UserID == "" {
		c.log.Warnw("missing interview or user id, skipping feedback")
		return home
	}

	feedbackID, err := c.gen.Generate(ctx, feedback.CreateFeedbackParams{
		InterviewID: c.cfg.InterviewID,
		UserID:      c.cfg.UserID,
		Transcript:  transcript,
	})
	if err != nil {
		c.log.Errorw("feedback generation failed", "interview_id", c.cfg.InterviewID, "err", err)
		return home
	}

	return Outcome{
		Redirect:   fmt.Sprintf("/interview/%s/feedback", c.cfg.InterviewID),
		FeedbackID: feedbackID,
	}
}

// Done is closed once terminal dispatch has completed.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Status:     c.status,
		IsSpeaking: c.isSpeaking,
		Transcript: len(c.transcript),
		Outcome:    c.outcome,
	}
	if n := len(c.transcript); n > 0 {
		snap.LastMessage = c.transcript[n-1].Content
	}
	return snap
}

// Transcript returns a copy of the accumulated transcript.
func (c *Controller) Transcript() []model.TranscriptEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.TranscriptEntry, len(c.transcript))
	copy(out, c.transcript)
	return out
}
