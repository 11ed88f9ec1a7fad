package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/VenkataVardineni/careerbuildai/internal/auth"
	"github.com/VenkataVardineni/careerbuildai/internal/repository"
	"github.com/VenkataVardineni/careerbuildai/pkg/model"
	"github.com/VenkataVardineni/careerbuildai/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestHandler(store Store, ai QuestionGenerator) *Handler {
	return &Handler{
		Logger: zap.NewNop(),
		Store:  store,
		AI:     ai,
	}
}

func newTestRouter(claims *auth.UserClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if claims != nil {
		r.Use(func(c *gin.Context) {
			c.Set("claims", claims)
		})
	}
	return r
}

func testClaims(userID int64) *auth.UserClaims {
	return &auth.UserClaims{UserID: userID, Email: "alice@example.com"}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, w.Body.String())
	}
	return env
}

func TestGenerateQuestion_EmptyHistoryIsInitial(t *testing.T) {
	var stored *model.InterviewQuestion
	store := &mockStore{
		getInterview: func(ctx context.Context, interviewID, userID int64) (*model.Interview, error) {
			return &model.Interview{InterviewID: interviewID, UserID: userID}, nil
		},
		createQuestion: func(ctx context.Context, q *model.InterviewQuestion) (*model.InterviewQuestion, error) {
			stored = q
			q.QuestionID = 1
			return q, nil
		},
	}
	ai := &mockAI{
		generate: func(ctx context.Context, resumeContent, jobRole string, jobDescription *string, history []map[string]any) (string, error) {
			return "Walk me through your most recent project.", nil
		},
	}

	h := newTestHandler(store, ai)
	r := newTestRouter(testClaims(7))
	r.POST("/interviews/:id/generate-question", h.GenerateQuestion)

	w := doJSON(t, r, http.MethodPost, "/interviews/42/generate-question", model.GenerateQuestionReq{
		ResumeContent: "resume text",
		JobRole:       "Backend Engineer",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", w.Code, w.Body.String())
	}
	if ai.calledGen != 1 || ai.calledFol != 0 {
		t.Fatalf("calledGen = %d, calledFol = %d, want 1 and 0", ai.calledGen, ai.calledFol)
	}
	if stored == nil {
		t.Fatal("question was not persisted")
	}
	if stored.QuestionType != model.QuestionTypeInitial {
		t.Errorf("stored type = %q, want %q", stored.QuestionType, model.QuestionTypeInitial)
	}
	if stored.InterviewID != 42 {
		t.Errorf("stored interview id = %d, want 42", stored.InterviewID)
	}

	env := decodeEnvelope(t, w)
	data, _ := env.Data.(map[string]any)
	if data["question_type"] != string(model.QuestionTypeInitial) {
		t.Errorf("question_type = %v, want %q", data["question_type"], model.QuestionTypeInitial)
	}
	prompt, _ := data["prompt"].(string)
	if !strings.Contains(prompt, "Backend Engineer") {
		t.Errorf("prompt does not mention the job role: %q", prompt)
	}
}

func TestGenerateQuestion_HistoryTriggersFollowUp(t *testing.T) {
	var stored *model.InterviewQuestion
	store := &mockStore{
		getInterview: func(ctx context.Context, interviewID, userID int64) (*model.Interview, error) {
			return &model.Interview{InterviewID: interviewID, UserID: userID}, nil
		},
		createQuestion: func(ctx context.Context, q *model.InterviewQuestion) (*model.InterviewQuestion, error) {
			stored = q
			return q, nil
		},
	}
	ai := &mockAI{
		follow: func(ctx context.Context, resumeContent, jobRole string, jobDescription *string, history []map[string]any) (string, error) {
			if len(history) != 2 {
				t.Errorf("history length = %d, want 2", len(history))
			}
			return "How did you measure the latency improvement?", nil
		},
	}

	h := newTestHandler(store, ai)
	r := newTestRouter(testClaims(7))
	r.POST("/interviews/:id/generate-question", h.GenerateQuestion)

	w := doJSON(t, r, http.MethodPost, "/interviews/42/generate-question", model.GenerateQuestionReq{
		ConversationHistory: []map[string]any{
			{"role": "assistant", "content": "First question?"},
			{"role": "user", "content": "My answer."},
		},
		ResumeContent: "resume text",
		JobRole:       "Backend Engineer",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", w.Code, w.Body.String())
	}
	if ai.calledFol != 1 || ai.calledGen != 0 {
		t.Fatalf("calledFol = %d, calledGen = %d, want 1 and 0", ai.calledFol, ai.calledGen)
	}
	if stored == nil || stored.QuestionType != model.QuestionTypeFollowUp {
		t.Fatalf("stored = %+v, want follow_up question", stored)
	}
}

func TestGenerateQuestion_UpstreamError(t *testing.T) {
	store := &mockStore{
		getInterview: func(ctx context.Context, interviewID, userID int64) (*model.Interview, error) {
			return &model.Interview{InterviewID: interviewID, UserID: userID}, nil
		},
	}
	ai := &mockAI{
		generate: func(ctx context.Context, resumeContent, jobRole string, jobDescription *string, history []map[string]any) (string, error) {
			return "", errors.New("groq api error: 503 - overloaded")
		},
	}

	h := newTestHandler(store, ai)
	r := newTestRouter(testClaims(7))
	r.POST("/interviews/:id/generate-question", h.GenerateQuestion)

	w := doJSON(t, r, http.MethodPost, "/interviews/42/generate-question", model.GenerateQuestionReq{
		ResumeContent: "resume text",
		JobRole:       "Backend Engineer",
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Error == nil || !strings.HasPrefix(env.Error.Message, "Error generating question: ") {
		t.Fatalf("error = %+v, want generating-question message", env.Error)
	}
}

func TestGenerateQuestion_InterviewNotOwned(t *testing.T) {
	store := &mockStore{
		getInterview: func(ctx context.Context, interviewID, userID int64) (*model.Interview, error) {
			return nil, repository.ErrNotFound
		},
	}
	ai := &mockAI{}

	h := newTestHandler(store, ai)
	r := newTestRouter(testClaims(7))
	r.POST("/interviews/:id/generate-question", h.GenerateQuestion)

	w := doJSON(t, r, http.MethodPost, "/interviews/42/generate-question", model.GenerateQuestionReq{
		ResumeContent: "resume text",
		JobRole:       "Backend Engineer",
	})

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if ai.calledGen != 0 || ai.calledFol != 0 {
		t.Error("generator must not be called for an unknown interview")
	}
}

func TestRespond_PersistsResponseAndTimestamp(t *testing.T) {
	var gotQuestionID, gotInterviewID int64
	var gotResponse string
	var gotAt time.Time
	store := &mockStore{
		getInterview: func(ctx context.Context, interviewID, userID int64) (*model.Interview, error) {
			return &model.Interview{InterviewID: interviewID, UserID: userID}, nil
		},
		setQuestionAnswer: func(ctx context.Context, questionID, interviewID int64, response string, at time.Time) error {
			gotQuestionID, gotInterviewID = questionID, interviewID
			gotResponse, gotAt = response, at
			return nil
		},
	}

	h := newTestHandler(store, &mockAI{})
	r := newTestRouter(testClaims(7))
	r.POST("/interviews/:id/questions/:questionId/respond", h.Respond)

	before := time.Now()
	w := doJSON(t, r, http.MethodPost, "/interviews/42/questions/5/respond", model.RespondReq{
		Response: "I led the migration to event sourcing.",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", w.Code, w.Body.String())
	}
	if gotQuestionID != 5 || gotInterviewID != 42 {
		t.Errorf("persisted ids = (%d, %d), want (5, 42)", gotQuestionID, gotInterviewID)
	}
	if gotResponse != "I led the migration to event sourcing." {
		t.Errorf("persisted response = %q", gotResponse)
	}
	if gotAt.Before(before) || gotAt.After(time.Now()) {
		t.Errorf("timestamp %v outside request window", gotAt)
	}
}

func TestRespond_MissingBody(t *testing.T) {
	h := newTestHandler(&mockStore{}, &mockAI{})
	r := newTestRouter(testClaims(7))
	r.POST("/interviews/:id/questions/:questionId/respond", h.Respond)

	w := doJSON(t, r, http.MethodPost, "/interviews/42/questions/5/respond", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestFeedback_AlwaysOKEvenWhenMasked(t *testing.T) {
	answer := "Used Redis as a cache."
	store := &mockStore{
		getInterview: func(ctx context.Context, interviewID, userID int64) (*model.Interview, error) {
			return &model.Interview{InterviewID: interviewID, UserID: userID, ProfileID: 3, JobRole: "SRE"}, nil
		},
		getProfile: func(ctx context.Context, profileID, userID int64) (*model.Profile, error) {
			return &model.Profile{ProfileID: profileID, UserID: userID, ResumeContent: "resume"}, nil
		},
		listQuestions: func(ctx context.Context, interviewID int64) ([]model.InterviewQuestion, error) {
			return []model.InterviewQuestion{
				{QuestionID: 1, QuestionText: "Q1", UserResponse: &answer},
				{QuestionID: 2, QuestionText: "Q2"},
			}, nil
		},
	}
	ai := &mockAI{
		feedback: func(ctx context.Context, pairs []model.QAPair, resumeContent, jobRole string, jobDescription *string) ([]string, json.RawMessage) {
			if len(pairs) != 2 {
				t.Errorf("pairs = %d, want 2", len(pairs))
			}
			if pairs[0].Answer != answer || pairs[1].Answer != "" {
				t.Errorf("answers = %q / %q, want recorded answer then empty", pairs[0].Answer, pairs[1].Answer)
			}
			return []string{"Feedback not available.", "Feedback not available."}, nil
		},
	}

	h := newTestHandler(store, ai)
	r := newTestRouter(testClaims(7))
	r.POST("/interviews/:id/feedback", h.Feedback)

	req := httptest.NewRequest(http.MethodPost, "/interviews/42/feedback", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when evaluation failed", w.Code)
	}
	env := decodeEnvelope(t, w)
	data, _ := env.Data.(map[string]any)
	fb, _ := data["feedback"].([]any)
	if len(fb) != 2 {
		t.Fatalf("feedback entries = %d, want 2", len(fb))
	}
	for i, f := range fb {
		if f != "Feedback not available." {
			t.Errorf("feedback[%d] = %v, want placeholder", i, f)
		}
	}
}

func TestFeedback_NoQuestions(t *testing.T) {
	store := &mockStore{
		getInterview: func(ctx context.Context, interviewID, userID int64) (*model.Interview, error) {
			return &model.Interview{InterviewID: interviewID, UserID: userID}, nil
		},
		listQuestions: func(ctx context.Context, interviewID int64) ([]model.InterviewQuestion, error) {
			return nil, nil
		},
	}

	h := newTestHandler(store, &mockAI{})
	r := newTestRouter(testClaims(7))
	r.POST("/interviews/:id/feedback", h.Feedback)

	req := httptest.NewRequest(http.MethodPost, "/interviews/42/feedback", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	env := decodeEnvelope(t, w)
	data, _ := env.Data.(map[string]any)
	fb, ok := data["feedback"].([]any)
	if !ok || len(fb) != 0 {
		t.Fatalf("feedback = %v, want empty list", data["feedback"])
	}
}

func TestCreateInterview_UnknownProfile(t *testing.T) {
	store := &mockStore{
		getProfile: func(ctx context.Context, profileID, userID int64) (*model.Profile, error) {
			return nil, repository.ErrNotFound
		},
	}

	h := newTestHandler(store, &mockAI{})
	r := newTestRouter(testClaims(7))
	r.POST("/interviews", h.CreateInterview)

	w := doJSON(t, r, http.MethodPost, "/interviews", model.CreateInterviewReq{
		ProfileID:       99,
		JobRole:         "Data Engineer",
		InterviewMode:   model.InterviewModeReal,
		DurationMinutes: 30,
	})

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Error == nil || env.Error.Message != "profile not found" {
		t.Fatalf("error = %+v, want profile not found", env.Error)
	}
}

func TestGetInterview_IncludesQuestionsInOrder(t *testing.T) {
	store := &mockStore{
		getInterview: func(ctx context.Context, interviewID, userID int64) (*model.Interview, error) {
			return &model.Interview{InterviewID: interviewID, UserID: userID, JobRole: "SWE"}, nil
		},
		listQuestions: func(ctx context.Context, interviewID int64) ([]model.InterviewQuestion, error) {
			return []model.InterviewQuestion{
				{QuestionID: 1, QuestionText: "first"},
				{QuestionID: 2, QuestionText: "second"},
			}, nil
		},
	}

	h := newTestHandler(store, &mockAI{})
	r := newTestRouter(testClaims(7))
	r.GET("/interviews/:id", h.GetInterview)

	req := httptest.NewRequest(http.MethodGet, "/interviews/42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	env := decodeEnvelope(t, w)
	data, _ := env.Data.(map[string]any)
	qs, _ := data["questions"].([]any)
	if len(qs) != 2 {
		t.Fatalf("questions = %d, want 2", len(qs))
	}
	first, _ := qs[0].(map[string]any)
	if first["question_text"] != "first" {
		t.Errorf("questions[0] = %v, want the earliest question first", first["question_text"])
	}
}

func TestNoClaimsIsUnauthorized(t *testing.T) {
	h := newTestHandler(&mockStore{}, &mockAI{})
	r := newTestRouter(nil)
	r.GET("/interviews", h.ListInterviews)

	req := httptest.NewRequest(http.MethodGet, "/interviews", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
