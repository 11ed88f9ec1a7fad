package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/VenkataVardineni/careerbuildai/pkg/model"
)

func (r *Repository) CreateQuestion(ctx context.Context, q *model.InterviewQuestion) (*model.InterviewQuestion, error) {
	const stmt = `
INSERT INTO interview_questions (interview_id, question_text, question_type)
VALUES ($1, $2, $3)
RETURNING id, created_at
`
	row := r.db.QueryRow(ctx, stmt, q.InterviewID, q.QuestionText, q.QuestionType)
	if err := row.Scan(&q.QuestionID, &q.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

const questionCols = `id, interview_id, question_text, question_type, user_response, response_timestamp, created_at`

func scanQuestion(row interface{ Scan(dest ...any) error }, q *model.InterviewQuestion) error {
	return row.Scan(&q.QuestionID, &q.InterviewID, &q.QuestionText, &q.QuestionType,
		&q.UserResponse, &q.ResponseTimestamp, &q.CreatedAt)
}

func (r *Repository) ListQuestionsByInterview(ctx context.Context, interviewID int64) ([]model.InterviewQuestion, error) {
	stmt := `SELECT ` + questionCols + ` FROM interview_questions WHERE interview_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.db.Query(ctx, stmt, interviewID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []model.InterviewQuestion
	for rows.Next() {
		var q model.InterviewQuestion
		if err := scanQuestion(rows, &q); err != nil {
			return nil, fmt.Errorf("scan question row: %w", err)
		}
		out = append(out, q)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *Repository) GetQuestionForInterview(ctx context.Context, questionID, interviewID int64) (*model.InterviewQuestion, error) {
	stmt := `SELECT ` + questionCols + ` FROM interview_questions WHERE id = $1 AND interview_id = $2`
	var q model.InterviewQuestion
	if err := scanQuestion(r.db.QueryRow(ctx, stmt, questionID, interviewID), &q); err != nil {
		return nil, notFoundOr(err, "scan question")
	}
	return &q, nil
}

// SetQuestionResponse records the candidate's answer. Unconditional: a second
// answer overwrites the first, timestamp included.
func (r *Repository) SetQuestionResponse(ctx context.Context, questionID, interviewID int64, response string, at time.Time) error {
	const stmt = `
UPDATE interview_questions SET user_response = $3, response_timestamp = $4
WHERE id = $1 AND interview_id = $2
`
	tag, err := r.db.Exec(ctx, stmt, questionID, interviewID, response, at)
	if err != nil {
		return fmt.Errorf("update question response: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
