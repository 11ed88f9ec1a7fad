package model

import "time"

type InterviewMode string

const (
	InterviewModeReal   InterviewMode = "real"
	InterviewModeGuided InterviewMode = "guided"
)

type Interview struct {
	InterviewID     int64         `json:"id" db:"id"`
	UserID          int64         `json:"user_id" db:"user_id"`
	ProfileID       int64         `json:"profile_id" db:"profile_id"`
	JobRole         string        `json:"job_role" db:"job_role"`
	JobDescription  *string       `json:"job_description" db:"job_description"`
	InterviewMode   InterviewMode `json:"interview_mode" db:"interview_mode"`
	DurationMinutes int           `json:"duration_minutes" db:"duration_minutes"`
	IsCompleted     bool          `json:"is_completed" db:"is_completed"`
	StartedAt       time.Time     `json:"started_at" db:"started_at"`
	CompletedAt     *time.Time    `json:"completed_at" db:"completed_at"`
}

type CreateInterviewReq struct {
	ProfileID       int64         `json:"profile_id" binding:"required"`
	JobRole         string        `json:"job_role" binding:"required"`
	JobDescription  *string       `json:"job_description"`
	InterviewMode   InterviewMode `json:"interview_mode" binding:"required,oneof=real guided"`
	DurationMinutes int           `json:"duration_minutes" binding:"required,min=1"`
}

type InterviewWithQuestions struct {
	Interview
	Questions []InterviewQuestion `json:"questions"`
}

// GenerateQuestionReq carries the client-supplied conversation history. Turns
// arrive untrusted and untyped; the groq package sanitizes them before they go
// upstream.
type GenerateQuestionReq struct {
	ConversationHistory []map[string]any `json:"conversation_history"`
	ResumeContent       string           `json:"resume_content" binding:"required"`
	JobRole             string           `json:"job_role" binding:"required"`
	JobDescription      *string          `json:"job_description"`
}

type GenerateQuestionRes struct {
	Question     string       `json:"question"`
	QuestionType QuestionType `json:"question_type"`
	Prompt       string       `json:"prompt,omitempty"`
}

type FeedbackRes struct {
	Feedback    []string `json:"feedback"`
	RawResponse any      `json:"raw_response"`
}
