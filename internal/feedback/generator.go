package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shakthishetty/Interview-Prep-Ai/internal/gemini"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/metrics"
	"github.com/shakthishetty/Interview-Prep-Ai/pkg/model"
	"go.uber.org/zap"
)

// ErrEmptyTranscript means there is nothing to analyze; the caller skips
// feedback generation entirely in that case.
var ErrEmptyTranscript = errors.New("empty transcript")

// ObjectGenerator is the slice of the model client the generator needs.
type ObjectGenerator interface {
	GenerateObject(ctx context.Context, system, prompt string, schema *gemini.Schema, out any) error
}

// Store persists feedback records, create-or-overwrite by id.
type Store interface {
	SaveFeedback(ctx context.Context, fb *model.Feedback) (string, error)
}

type CreateFeedbackParams struct {
	InterviewID string
	UserID      string
	Transcript  []model.TranscriptEntry
	FeedbackID  string // optional; overwrite this record when set
}

// Generator turns a finished transcript into a persisted Feedback record.
// Model failures are absorbed by a fixed fallback payload; only persistence
// failures surface as errors.
type Generator struct {
	llm        ObjectGenerator
	store      Store
	log        *zap.SugaredLogger
	timeout    time.Duration
	maxRetries int
	now        func() time.Time
}

func NewGenerator(llm ObjectGenerator, store Store, log *zap.Logger, timeout time.Duration, maxRetries int) *Generator {
	return &Generator{
		llm:        llm,
		store:      store,
		log:        log.Sugar(),
		timeout:    timeout,
		maxRetries: maxRetries,
		now:        time.Now,
	}
}

// Generate evaluates the transcript and persists the result, returning the
// feedback id.
func (g *Generator) Generate(ctx context.Context, params CreateFeedbackParams) (string, error) {
	if params.InterviewID == "" || params.UserID == "" {
		return "", fmt.Errorf("interview id and user id are required")
	}

	formatted := formatTranscript(params.Transcript)
	if strings.TrimSpace(formatted) == "" {
		return "", ErrEmptyTranscript
	}

	ev, err := g.evaluate(ctx, formatted)
	if err != nil {
		g.log.Errorw("model evaluation failed, using fallback feedback",
			"interview_id", params.InterviewID, "err", err)
		metrics.FeedbackFallbacks.Inc()
		ev = fallbackEvaluation()
	} else if verr := validateEvaluation(ev); verr != nil {
		// schema drift is logged but does not block persistence
		g.log.Warnw("generated feedback failed validation",
			"interview_id", params.InterviewID, "err", verr)
	}

	fb := &model.Feedback{
		FeedbackID:          params.FeedbackID,
		InterviewID:         params.InterviewID,
		UserID:              params.UserID,
		TotalScore:          ev.TotalScore,
		CategoryScores:      ev.CategoryScores,
		Strengths:           ev.Strengths,
		AreasForImprovement: ev.AreasForImprovement,
		FinalAssessment:     ev.FinalAssessment,
		CreatedAt:           g.now(),
	}

	feedbackID, err := g.store.SaveFeedback(ctx, fb)
	if err != nil {
		return "", fmt.Errorf("save feedback: %w", err)
	}

	metrics.FeedbackGenerated.Inc()
	g.log.Infow("feedback saved", "feedback_id", feedbackID, "interview_id", params.InterviewID)
	return feedbackID, nil
}

// evaluate calls the hosted model with a per-attempt timeout and a bounded
// number of retries.
func (g *Generator) evaluate(ctx context.Context, formattedTranscript string) (*evaluation, error) {
	prompt := evaluationPrompt(formattedTranscript)
	schema := evaluationSchema()

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		start := g.now()
		var ev evaluation
		err := g.llm.GenerateObject(callCtx, systemInstruction, prompt, schema, &ev)
		cancel()
		metrics.ModelDuration.Observe(time.Since(start).Seconds())

		if err == nil {
			return &ev, nil
		}
		lastErr = err
		g.log.Warnw("model call failed", "attempt", attempt+1, "err", err)
	}
	return nil, lastErr
}
