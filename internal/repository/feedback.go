package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shakthishetty/Interview-Prep-Ai/pkg/model"
)

// SaveFeedback creates or overwrites a feedback record and returns its id.
//
// With an explicit feedback id the row at that id is replaced. Without one,
// the unique constraint on (interview_id, user_id) makes repeated grading of
// the same interview overwrite the existing record instead of creating a
// duplicate.
func (r *Repository) SaveFeedback(ctx context.Context, fb *model.Feedback) (string, error) {
	scores, err := json.Marshal(fb.CategoryScores)
	if err != nil {
		return "", fmt.Errorf("marshal category scores: %w", err)
	}

	if fb.FeedbackID != "" {
		// the pair constraint also holds here: any older record for the same
		// (interview_id, user_id) under a different id gives way first
		err := r.execTx(ctx, func(tx pgx.Tx) error {
			const qClear = `
DELETE FROM feedback
WHERE interview_id = $1 AND user_id = $2 AND feedback_id <> $3
`
			if _, err := tx.Exec(ctx, qClear, fb.InterviewID, fb.UserID, fb.FeedbackID); err != nil {
				return fmt.Errorf("clear feedback for pair: %w", err)
			}

			const q = `
INSERT INTO feedback (feedback_id, interview_id, user_id, total_score, category_scores,
	strengths, areas_for_improvement, final_assessment, created_at)
VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9)
ON CONFLICT (feedback_id) DO UPDATE SET
	total_score = EXCLUDED.total_score,
	category_scores = EXCLUDED.category_scores,
	strengths = EXCLUDED.strengths,
	areas_for_improvement = EXCLUDED.areas_for_improvement,
	final_assessment = EXCLUDED.final_assessment,
	created_at = EXCLUDED.created_at
`
			if _, err := tx.Exec(ctx, q,
				fb.FeedbackID, fb.InterviewID, fb.UserID, fb.TotalScore, scores,
				fb.Strengths, fb.AreasForImprovement, fb.FinalAssessment, fb.CreatedAt,
			); err != nil {
				return fmt.Errorf("upsert feedback by id: %w", err)
			}
			return nil
		})
		if err != nil {
			return "", err
		}
		return fb.FeedbackID, nil
	}

	id := uuid.New().String()
	const q = `
INSERT INTO feedback (feedback_id, interview_id, user_id, total_score, category_scores,
	strengths, areas_for_improvement, final_assessment, created_at)
VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9)
ON CONFLICT ON CONSTRAINT feedback_interview_user_key DO UPDATE SET
	total_score = EXCLUDED.total_score,
	category_scores = EXCLUDED.category_scores,
	strengths = EXCLUDED.strengths,
	areas_for_improvement = EXCLUDED.areas_for_improvement,
	final_assessment = EXCLUDED.final_assessment,
	created_at = EXCLUDED.created_at
RETURNING feedback_id
`
	row := r.db.QueryRow(ctx, q,
		id, fb.InterviewID, fb.UserID, fb.TotalScore, scores,
		fb.Strengths, fb.AreasForImprovement, fb.FinalAssessment, fb.CreatedAt,
	)
	var savedID string
	if err := row.Scan(&savedID); err != nil {
		return "", fmt.Errorf("upsert feedback: %w", err)
	}
	return savedID, nil
}

// GetFeedbackByInterview looks feedback up by equality on the
// (interview_id, user_id) pair.
func (r *Repository) GetFeedbackByInterview(ctx context.Context, interviewID, userID string) (*model.Feedback, error) {
	const q = `
SELECT feedback_id, interview_id, user_id, total_score, category_scores,
	strengths, areas_for_improvement, final_assessment, created_at
FROM feedback
WHERE interview_id = $1 AND user_id = $2
LIMIT 1
`
	var fb model.Feedback
	var scores []byte
	row := r.db.QueryRow(ctx, q, interviewID, userID)
	if err := row.Scan(&fb.FeedbackID, &fb.InterviewID, &fb.UserID, &fb.TotalScore, &scores,
		&fb.Strengths, &fb.AreasForImprovement, &fb.FinalAssessment, &fb.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan feedback: %w", err)
	}
	if err := json.Unmarshal(scores, &fb.CategoryScores); err != nil {
		return nil, fmt.Errorf("unmarshal category scores: %w", err)
	}
	return &fb, nil
}
