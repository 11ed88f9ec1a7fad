package handler

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/VenkataVardineni/careerbuildai/pkg/model"
)

// mockStore implements Store with per-method hooks so each test stubs only
// what it touches.
type mockStore struct {
	createUser        func(ctx context.Context, u *model.User) (*model.User, error)
	getUserByEmail    func(ctx context.Context, email string) (*model.User, error)
	getUserByID       func(ctx context.Context, id int64) (*model.User, error)
	listUsers         func(ctx context.Context) ([]model.User, error)
	countUsers        func(ctx context.Context) (int, error)
	createSession     func(ctx context.Context, s *model.UserSession) (*model.UserSession, error)
	getSession        func(ctx context.Context, sessionID string) (*model.UserSession, error)
	revokeSession     func(ctx context.Context, sessionID string) error
	deleteSession     func(ctx context.Context, sessionID string) error
	createProfile     func(ctx context.Context, p *model.Profile) (*model.Profile, error)
	getProfile        func(ctx context.Context, profileID, userID int64) (*model.Profile, error)
	listProfiles      func(ctx context.Context, userID int64) ([]model.Profile, error)
	updateProfile     func(ctx context.Context, profileID, userID int64, req *model.UpdateProfileReq) (*model.Profile, error)
	deleteProfile     func(ctx context.Context, profileID, userID int64) error
	createInterview   func(ctx context.Context, iv *model.Interview) (*model.Interview, error)
	getInterview      func(ctx context.Context, interviewID, userID int64) (*model.Interview, error)
	listInterviews    func(ctx context.Context, userID int64) ([]model.Interview, error)
	markCompleted     func(ctx context.Context, interviewID, userID int64, completedAt time.Time) error
	deleteInterview   func(ctx context.Context, interviewID, userID int64) error
	createQuestion    func(ctx context.Context, q *model.InterviewQuestion) (*model.InterviewQuestion, error)
	listQuestions     func(ctx context.Context, interviewID int64) ([]model.InterviewQuestion, error)
	getQuestion       func(ctx context.Context, questionID, interviewID int64) (*model.InterviewQuestion, error)
	setQuestionAnswer func(ctx context.Context, questionID, interviewID int64, response string, at time.Time) error
}

var errNotStubbed = errors.New("not stubbed")

func (m *mockStore) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	if m.createUser == nil {
		return nil, errNotStubbed
	}
	return m.createUser(ctx, u)
}

func (m *mockStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getUserByEmail == nil {
		return nil, errNotStubbed
	}
	return m.getUserByEmail(ctx, email)
}

func (m *mockStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getUserByID == nil {
		return nil, errNotStubbed
	}
	return m.getUserByID(ctx, id)
}

func (m *mockStore) ListUsers(ctx context.Context) ([]model.User, error) {
	if m.listUsers == nil {
		return nil, errNotStubbed
	}
	return m.listUsers(ctx)
}

func (m *mockStore) CountUsers(ctx context.Context) (int, error) {
	if m.countUsers == nil {
		return 0, errNotStubbed
	}
	return m.countUsers(ctx)
}

func (m *mockStore) CreateUserSession(ctx context.Context, s *model.UserSession) (*model.UserSession, error) {
	if m.createSession == nil {
		return nil, errNotStubbed
	}
	return m.createSession(ctx, s)
}

func (m *mockStore) GetUserSession(ctx context.Context, sessionID string) (*model.UserSession, error) {
	if m.getSession == nil {
		return nil, errNotStubbed
	}
	return m.getSession(ctx, sessionID)
}

func (m *mockStore) RevokeUserSession(ctx context.Context, sessionID string) error {
	if m.revokeSession == nil {
		return errNotStubbed
	}
	return m.revokeSession(ctx, sessionID)
}

func (m *mockStore) DeleteUserSession(ctx context.Context, sessionID string) error {
	if m.deleteSession == nil {
		return errNotStubbed
	}
	return m.deleteSession(ctx, sessionID)
}

func (m *mockStore) CreateProfile(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	if m.createProfile == nil {
		return nil, errNotStubbed
	}
	return m.createProfile(ctx, p)
}

func (m *mockStore) GetProfileForUser(ctx context.Context, profileID, userID int64) (*model.Profile, error) {
	if m.getProfile == nil {
		return nil, errNotStubbed
	}
	return m.getProfile(ctx, profileID, userID)
}

func (m *mockStore) ListProfilesByUser(ctx context.Context, userID int64) ([]model.Profile, error) {
	if m.listProfiles == nil {
		return nil, errNotStubbed
	}
	return m.listProfiles(ctx, userID)
}

func (m *mockStore) UpdateProfileForUser(ctx context.Context, profileID, userID int64, req *model.UpdateProfileReq) (*model.Profile, error) {
	if m.updateProfile == nil {
		return nil, errNotStubbed
	}
	return m.updateProfile(ctx, profileID, userID, req)
}

func (m *mockStore) DeleteProfileForUser(ctx context.Context, profileID, userID int64) error {
	if m.deleteProfile == nil {
		return errNotStubbed
	}
	return m.deleteProfile(ctx, profileID, userID)
}

func (m *mockStore) CreateInterview(ctx context.Context, iv *model.Interview) (*model.Interview, error) {
	if m.createInterview == nil {
		return nil, errNotStubbed
	}
	return m.createInterview(ctx, iv)
}

func (m *mockStore) GetInterviewForUser(ctx context.Context, interviewID, userID int64) (*model.Interview, error) {
	if m.getInterview == nil {
		return nil, errNotStubbed
	}
	return m.getInterview(ctx, interviewID, userID)
}

func (m *mockStore) ListInterviewsByUser(ctx context.Context, userID int64) ([]model.Interview, error) {
	if m.listInterviews == nil {
		return nil, errNotStubbed
	}
	return m.listInterviews(ctx, userID)
}

func (m *mockStore) MarkInterviewCompleted(ctx context.Context, interviewID, userID int64, completedAt time.Time) error {
	if m.markCompleted == nil {
		return errNotStubbed
	}
	return m.markCompleted(ctx, interviewID, userID, completedAt)
}

func (m *mockStore) DeleteInterviewForUser(ctx context.Context, interviewID, userID int64) error {
	if m.deleteInterview == nil {
		return errNotStubbed
	}
	return m.deleteInterview(ctx, interviewID, userID)
}

func (m *mockStore) CreateQuestion(ctx context.Context, q *model.InterviewQuestion) (*model.InterviewQuestion, error) {
	if m.createQuestion == nil {
		return nil, errNotStubbed
	}
	return m.createQuestion(ctx, q)
}

func (m *mockStore) ListQuestionsByInterview(ctx context.Context, interviewID int64) ([]model.InterviewQuestion, error) {
	if m.listQuestions == nil {
		return nil, errNotStubbed
	}
	return m.listQuestions(ctx, interviewID)
}

func (m *mockStore) GetQuestionForInterview(ctx context.Context, questionID, interviewID int64) (*model.InterviewQuestion, error) {
	if m.getQuestion == nil {
		return nil, errNotStubbed
	}
	return m.getQuestion(ctx, questionID, interviewID)
}

func (m *mockStore) SetQuestionResponse(ctx context.Context, questionID, interviewID int64, response string, at time.Time) error {
	if m.setQuestionAnswer == nil {
		return errNotStubbed
	}
	return m.setQuestionAnswer(ctx, questionID, interviewID, response, at)
}

// mockAI stubs the question generator.
type mockAI struct {
	generate  func(ctx context.Context, resumeContent, jobRole string, jobDescription *string, history []map[string]any) (string, error)
	follow    func(ctx context.Context, resumeContent, jobRole string, jobDescription *string, history []map[string]any) (string, error)
	feedback  func(ctx context.Context, pairs []model.QAPair, resumeContent, jobRole string, jobDescription *string) ([]string, json.RawMessage)
	calledGen int
	calledFol int
}

func (m *mockAI) GenerateQuestion(ctx context.Context, resumeContent, jobRole string, jobDescription *string, history []map[string]any) (string, error) {
	m.calledGen++
	if m.generate == nil {
		return "", errNotStubbed
	}
	return m.generate(ctx, resumeContent, jobRole, jobDescription, history)
}

func (m *mockAI) GenerateFollowUpQuestion(ctx context.Context, resumeContent, jobRole string, jobDescription *string, history []map[string]any) (string, error) {
	m.calledFol++
	if m.follow == nil {
		return "", errNotStubbed
	}
	return m.follow(ctx, resumeContent, jobRole, jobDescription, history)
}

func (m *mockAI) EvaluateAnswers(ctx context.Context, pairs []model.QAPair, resumeContent, jobRole string, jobDescription *string) ([]string, json.RawMessage) {
	if m.feedback == nil {
		return nil, nil
	}
	return m.feedback(ctx, pairs, resumeContent, jobRole, jobDescription)
}
