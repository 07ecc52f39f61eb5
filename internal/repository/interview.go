package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shakthishetty/Interview-Prep-Ai/pkg/model"
)

func (r *Repository) CreateInterview(ctx context.Context, iv *model.Interview) (string, error) {
	if iv.InterviewID == "" {
		iv.InterviewID = uuid.New().String()
	}
	const q = `
INSERT INTO interviews (interview_id, user_id, role, level, type, techstack, questions, finalized, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
`
	_, err := r.db.Exec(ctx, q,
		iv.InterviewID, iv.UserID, iv.Role, iv.Level, iv.Type, iv.Techstack, iv.Questions, iv.Finalized,
	)
	if err != nil {
		return "", fmt.Errorf("insert interview: %w", err)
	}
	return iv.InterviewID, nil
}

func (r *Repository) GetInterviewByID(ctx context.Context, interviewID string) (*model.Interview, error) {
	const q = `
SELECT interview_id, user_id, role, level, type, techstack, questions, finalized, created_at
FROM interviews
WHERE interview_id = $1
`
	var iv model.Interview
	row := r.db.QueryRow(ctx, q, interviewID)
	if err := row.Scan(&iv.InterviewID, &iv.UserID, &iv.Role, &iv.Level, &iv.Type,
		&iv.Techstack, &iv.Questions, &iv.Finalized, &iv.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan interview: %w", err)
	}
	return &iv, nil
}

// ListInterviewsByUser returns the user's interviews, newest first.
func (r *Repository) ListInterviewsByUser(ctx context.Context, userID string) ([]model.Interview, error) {
	const q = `
SELECT interview_id, user_id, role, level, type, techstack, questions, finalized, created_at
FROM interviews
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query interviews: %w", err)
	}
	defer rows.Close()

	return scanInterviews(rows)
}

// ListLatestInterviews returns finalized interviews created by other users,
// newest first, for the discovery feed.
func (r *Repository) ListLatestInterviews(ctx context.Context, excludeUserID string, limit int) ([]model.Interview, error) {
	const q = `
SELECT interview_id, user_id, role, level, type, techstack, questions, finalized, created_at
FROM interviews
WHERE finalized AND user_id <> $1
ORDER BY created_at DESC
LIMIT $2
`
	rows, err := r.db.Query(ctx, q, excludeUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("query latest interviews: %w", err)
	}
	defer rows.Close()

	return scanInterviews(rows)
}

func scanInterviews(rows pgx.Rows) ([]model.Interview, error) {
	out := make([]model.Interview, 0)
	for rows.Next() {
		var iv model.Interview
		if err := rows.Scan(&iv.InterviewID, &iv.UserID, &iv.Role, &iv.Level, &iv.Type,
			&iv.Techstack, &iv.Questions, &iv.Finalized, &iv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interview row: %w", err)
		}
		out = append(out, iv)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// DeleteInterview removes an interview and any feedback attached to it.
func (r *Repository) DeleteInterview(ctx context.Context, interviewID string) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		const qFeedback = `DELETE FROM feedback WHERE interview_id = $1`
		if _, err := tx.Exec(ctx, qFeedback, interviewID); err != nil {
			return fmt.Errorf("delete feedback: %w", err)
		}

		const qInterview = `DELETE FROM interviews WHERE interview_id = $1`
		tag, err := tx.Exec(ctx, qInterview, interviewID)
		if err != nil {
			return fmt.Errorf("delete interview: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}
