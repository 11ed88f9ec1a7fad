package model

import "time"

type QuestionType string

const (
	QuestionTypeInitial  QuestionType = "initial"
	QuestionTypeFollowUp QuestionType = "follow_up"
)

type InterviewQuestion struct {
	QuestionID        int64        `json:"id" db:"id"`
	InterviewID       int64        `json:"interview_id" db:"interview_id"`
	QuestionText      string       `json:"question_text" db:"question_text"`
	QuestionType      QuestionType `json:"question_type" db:"question_type"`
	UserResponse      *string      `json:"user_response" db:"user_response"`
	ResponseTimestamp *time.Time   `json:"response_timestamp" db:"response_timestamp"`
	CreatedAt         time.Time    `json:"created_at" db:"created_at"`
}

type RespondReq struct {
	Response string `json:"response" binding:"required"`
}

// QAPair is one question with the candidate's answer, as sent to the
// evaluator. Unanswered questions carry an empty answer.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
