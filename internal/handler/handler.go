package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/VenkataVardineni/careerbuildai/internal/auth"
	"github.com/VenkataVardineni/careerbuildai/internal/cache"
	"github.com/VenkataVardineni/careerbuildai/internal/resume"
	"github.com/VenkataVardineni/careerbuildai/pkg/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Store is the persistence surface the handlers depend on, implemented by
// repository.Repository.
type Store interface {
	CreateUser(ctx context.Context, u *model.User) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	CountUsers(ctx context.Context) (int, error)

	CreateUserSession(ctx context.Context, s *model.UserSession) (*model.UserSession, error)
	GetUserSession(ctx context.Context, sessionID string) (*model.UserSession, error)
	RevokeUserSession(ctx context.Context, sessionID string) error
	DeleteUserSession(ctx context.Context, sessionID string) error

	CreateProfile(ctx context.Context, p *model.Profile) (*model.Profile, error)
	GetProfileForUser(ctx context.Context, profileID, userID int64) (*model.Profile, error)
	ListProfilesByUser(ctx context.Context, userID int64) ([]model.Profile, error)
	UpdateProfileForUser(ctx context.Context, profileID, userID int64, req *model.UpdateProfileReq) (*model.Profile, error)
	DeleteProfileForUser(ctx context.Context, profileID, userID int64) error

	CreateInterview(ctx context.Context, iv *model.Interview) (*model.Interview, error)
	GetInterviewForUser(ctx context.Context, interviewID, userID int64) (*model.Interview, error)
	ListInterviewsByUser(ctx context.Context, userID int64) ([]model.Interview, error)
	MarkInterviewCompleted(ctx context.Context, interviewID, userID int64, completedAt time.Time) error
	DeleteInterviewForUser(ctx context.Context, interviewID, userID int64) error

	CreateQuestion(ctx context.Context, q *model.InterviewQuestion) (*model.InterviewQuestion, error)
	ListQuestionsByInterview(ctx context.Context, interviewID int64) ([]model.InterviewQuestion, error)
	GetQuestionForInterview(ctx context.Context, questionID, interviewID int64) (*model.InterviewQuestion, error)
	SetQuestionResponse(ctx context.Context, questionID, interviewID int64, response string, at time.Time) error
}

// QuestionGenerator is the LLM surface, implemented by groq.Client.
type QuestionGenerator interface {
	GenerateQuestion(ctx context.Context, resumeContent, jobRole string, jobDescription *string, history []map[string]any) (string, error)
	GenerateFollowUpQuestion(ctx context.Context, resumeContent, jobRole string, jobDescription *string, history []map[string]any) (string, error)
	EvaluateAnswers(ctx context.Context, pairs []model.QAPair, resumeContent, jobRole string, jobDescription *string) ([]string, json.RawMessage)
}

type Handler struct {
	Logger     *zap.Logger
	Store      Store
	AI         QuestionGenerator
	Resume     *resume.Parser
	TokenMaker *auth.JWTMaker
	Sessions   *cache.SessionStore
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	UploadDir  string
}

// GetClaimsFromContext retrieves the verified claims set by the auth middleware.
func (h *Handler) GetClaimsFromContext(c *gin.Context) *auth.UserClaims {
	v, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := v.(*auth.UserClaims)
	if !ok {
		return nil
	}
	return claims
}
