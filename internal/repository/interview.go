package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/VenkataVardineni/careerbuildai/pkg/model"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) CreateInterview(ctx context.Context, iv *model.Interview) (*model.Interview, error) {
	const q = `
INSERT INTO interviews (user_id, profile_id, job_role, job_description, interview_mode, duration_minutes)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, is_completed, started_at
`
	row := r.db.QueryRow(ctx, q, iv.UserID, iv.ProfileID, iv.JobRole, iv.JobDescription,
		iv.InterviewMode, iv.DurationMinutes)
	if err := row.Scan(&iv.InterviewID, &iv.IsCompleted, &iv.StartedAt); err != nil {
		return nil, fmt.Errorf("insert interview: %w", err)
	}
	return iv, nil
}

const interviewCols = `id, user_id, profile_id, job_role, job_description, interview_mode, duration_minutes, is_completed, started_at, completed_at`

func scanInterview(row interface{ Scan(dest ...any) error }, iv *model.Interview) error {
	return row.Scan(&iv.InterviewID, &iv.UserID, &iv.ProfileID, &iv.JobRole, &iv.JobDescription,
		&iv.InterviewMode, &iv.DurationMinutes, &iv.IsCompleted, &iv.StartedAt, &iv.CompletedAt)
}

// GetInterviewForUser fetches an interview only when the given user owns it.
func (r *Repository) GetInterviewForUser(ctx context.Context, interviewID, userID int64) (*model.Interview, error) {
	q := `SELECT ` + interviewCols + ` FROM interviews WHERE id = $1 AND user_id = $2`
	var iv model.Interview
	if err := scanInterview(r.db.QueryRow(ctx, q, interviewID, userID), &iv); err != nil {
		return nil, notFoundOr(err, "scan interview")
	}
	return &iv, nil
}

func (r *Repository) ListInterviewsByUser(ctx context.Context, userID int64) ([]model.Interview, error) {
	q := `SELECT ` + interviewCols + ` FROM interviews WHERE user_id = $1 ORDER BY started_at DESC`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query interviews: %w", err)
	}
	defer rows.Close()

	var out []model.Interview
	for rows.Next() {
		var iv model.Interview
		if err := scanInterview(rows, &iv); err != nil {
			return nil, fmt.Errorf("scan interview row: %w", err)
		}
		out = append(out, iv)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// MarkInterviewCompleted sets the completion flag and re-stamps the
// completion time on every call, so re-invocation is harmless.
func (r *Repository) MarkInterviewCompleted(ctx context.Context, interviewID, userID int64, completedAt time.Time) error {
	const q = `
UPDATE interviews SET is_completed = TRUE, completed_at = $3
WHERE id = $1 AND user_id = $2
`
	tag, err := r.db.Exec(ctx, q, interviewID, userID, completedAt)
	if err != nil {
		return fmt.Errorf("complete interview: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteInterviewForUser removes the interview and its questions in one
// transaction. Hard delete, no completion-state check.
func (r *Repository) DeleteInterviewForUser(ctx context.Context, interviewID, userID int64) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		var owned int64
		const check = `SELECT id FROM interviews WHERE id = $1 AND user_id = $2`
		if err := tx.QueryRow(ctx, check, interviewID, userID).Scan(&owned); err != nil {
			return notFoundOr(err, "check interview")
		}

		const delQuestions = `DELETE FROM interview_questions WHERE interview_id = $1`
		if _, err := tx.Exec(ctx, delQuestions, interviewID); err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}

		const delInterview = `DELETE FROM interviews WHERE id = $1`
		if _, err := tx.Exec(ctx, delInterview, interviewID); err != nil {
			return fmt.Errorf("delete interview: %w", err)
		}
		return nil
	})
}
