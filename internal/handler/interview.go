package handler

import (
	"strconv"
	"time"

	"github.com/VenkataVardineni/careerbuildai/internal/groq"
	"github.com/VenkataVardineni/careerbuildai/pkg/model"
	"github.com/VenkataVardineni/careerbuildai/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateInterview starts an interview session against an owned profile
func (h *Handler) CreateInterview(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	var req model.CreateInterviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Store.GetProfileForUser(ctx, req.ProfileID, claims.UserID); err != nil {
		response.NotFound(c, "profile not found")
		return
	}

	interview, err := h.Store.CreateInterview(ctx, &model.Interview{
		UserID:          claims.UserID,
		ProfileID:       req.ProfileID,
		JobRole:         req.JobRole,
		JobDescription:  req.JobDescription,
		InterviewMode:   req.InterviewMode,
		DurationMinutes: req.DurationMinutes,
		StartedAt:       time.Now(),
	})
	if err != nil {
		h.Logger.Error("create interview failed", zap.Int64("user_id", claims.UserID), zap.Error(err))
		response.InternalError(c, "failed to create interview")
		return
	}

	response.Created(c, interview)
}

// ListInterviews returns the current user's interviews
func (h *Handler) ListInterviews(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	interviews, err := h.Store.ListInterviewsByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.Logger.Error("list interviews failed", zap.Int64("user_id", claims.UserID), zap.Error(err))
		response.InternalError(c, "failed to fetch interviews")
		return
	}
	response.OK(c, interviews)
}

// GetInterview returns an owned interview together with its questions in
// creation order
func (h *Handler) GetInterview(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	interviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id format")
		return
	}

	ctx := c.Request.Context()
	interview, err := h.Store.GetInterviewForUser(ctx, interviewID, claims.UserID)
	if err != nil {
		response.NotFound(c, "interview not found")
		return
	}

	questions, err := h.Store.ListQuestionsByInterview(ctx, interviewID)
	if err != nil {
		h.Logger.Error("list questions failed", zap.Int64("interview_id", interviewID), zap.Error(err))
		response.InternalError(c, "failed to fetch interview questions")
		return
	}

	response.OK(c, model.InterviewWithQuestions{
		Interview: *interview,
		Questions: questions,
	})
}

// DeleteInterview removes an owned interview and its questions
func (h *Handler) DeleteInterview(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	interviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id format")
		return
	}

	if err := h.Store.DeleteInterviewForUser(c.Request.Context(), interviewID, claims.UserID); err != nil {
		response.NotFound(c, "interview not found")
		return
	}
	response.Message(c, "interview deleted successfully")
}

// GenerateQuestion asks the model for the next question. An empty conversation
// history yields the opening question; anything else yields a follow-up probing
// the latest answer.
func (h *Handler) GenerateQuestion(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	interviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id format")
		return
	}

	var req model.GenerateQuestionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Store.GetInterviewForUser(ctx, interviewID, claims.UserID); err != nil {
		response.NotFound(c, "interview not found")
		return
	}

	questionType := model.QuestionTypeInitial
	var question string
	if len(req.ConversationHistory) == 0 {
		question, err = h.AI.GenerateQuestion(ctx, req.ResumeContent, req.JobRole, req.JobDescription, req.ConversationHistory)
	} else {
		questionType = model.QuestionTypeFollowUp
		question, err = h.AI.GenerateFollowUpQuestion(ctx, req.ResumeContent, req.JobRole, req.JobDescription, req.ConversationHistory)
	}
	if err != nil {
		h.Logger.Error("question generation failed",
			zap.Int64("interview_id", interviewID),
			zap.String("question_type", string(questionType)),
			zap.Error(err))
		response.InternalError(c, "Error generating question: "+err.Error())
		return
	}

	if _, err := h.Store.CreateQuestion(ctx, &model.InterviewQuestion{
		InterviewID:  interviewID,
		QuestionText: question,
		QuestionType: questionType,
	}); err != nil {
		h.Logger.Error("store question failed", zap.Int64("interview_id", interviewID), zap.Error(err))
		response.InternalError(c, "failed to save question")
		return
	}

	response.OK(c, model.GenerateQuestionRes{
		Question:     question,
		QuestionType: questionType,
		Prompt:       groq.BuildInterviewPrompt(req.ResumeContent, req.JobRole, req.JobDescription, req.ConversationHistory),
	})
}

// Respond records the candidate's answer to a question. Re-answering replaces
// the previous response and timestamp.
func (h *Handler) Respond(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	interviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id format")
		return
	}
	questionID, err := strconv.ParseInt(c.Param("questionId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid question id format")
		return
	}

	var req model.RespondReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Store.GetInterviewForUser(ctx, interviewID, claims.UserID); err != nil {
		response.NotFound(c, "interview not found")
		return
	}

	if err := h.Store.SetQuestionResponse(ctx, questionID, interviewID, req.Response, time.Now()); err != nil {
		response.NotFound(c, "question not found")
		return
	}
	response.Message(c, "response recorded successfully")
}

// Complete marks an interview finished, stamping the completion time
func (h *Handler) Complete(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	interviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id format")
		return
	}

	if err := h.Store.MarkInterviewCompleted(c.Request.Context(), interviewID, claims.UserID, time.Now()); err != nil {
		response.NotFound(c, "interview not found")
		return
	}
	response.Message(c, "interview completed successfully")
}

// Feedback evaluates every question asked so far and returns one feedback entry
// per question. Evaluation failures surface as placeholder entries, never as an
// error status.
func (h *Handler) Feedback(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	interviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id format")
		return
	}

	ctx := c.Request.Context()
	interview, err := h.Store.GetInterviewForUser(ctx, interviewID, claims.UserID)
	if err != nil {
		response.NotFound(c, "interview not found")
		return
	}

	questions, err := h.Store.ListQuestionsByInterview(ctx, interviewID)
	if err != nil {
		h.Logger.Error("list questions failed", zap.Int64("interview_id", interviewID), zap.Error(err))
		response.InternalError(c, "failed to fetch interview questions")
		return
	}
	if len(questions) == 0 {
		response.OK(c, model.FeedbackRes{Feedback: []string{}})
		return
	}

	profile, err := h.Store.GetProfileForUser(ctx, interview.ProfileID, claims.UserID)
	if err != nil {
		response.NotFound(c, "profile not found")
		return
	}

	pairs := make([]model.QAPair, 0, len(questions))
	for i := range questions {
		answer := ""
		if questions[i].UserResponse != nil {
			answer = *questions[i].UserResponse
		}
		pairs = append(pairs, model.QAPair{
			Question: questions[i].QuestionText,
			Answer:   answer,
		})
	}

	feedback, raw := h.AI.EvaluateAnswers(ctx, pairs, profile.ResumeContent, interview.JobRole, interview.JobDescription)

	res := model.FeedbackRes{Feedback: feedback}
	if raw != nil {
		res.RawResponse = raw
	}
	response.OK(c, res)
}
