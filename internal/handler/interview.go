package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/gemini"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/repository"
	"github.com/shakthishetty/Interview-Prep-Ai/pkg/model"
	"github.com/shakthishetty/Interview-Prep-Ai/pkg/response"
)

// CreateInterview saves a ready-made interview (questions already known).
func (h *Handler) CreateInterview(c *gin.Context) {
	var req model.CreateInterviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user := h.GetUserFromContext(c)
	if user == nil {
		response.Unauthorized(c, "")
		return
	}

	interviewID, err := h.Repository.CreateInterview(c.Request.Context(), &model.Interview{
		UserID:    user.UserID,
		Role:      req.Role,
		Level:     req.Level,
		Type:      req.Type,
		Techstack: req.Techstack,
		Questions: req.Questions,
		Finalized: true,
	})
	if err != nil {
		h.Logger.Sugar().Errorw("failed to create interview", "err", err)
		response.InternalError(c, "failed to create interview")
		return
	}

	response.Created(c, gin.H{"interview_id": interviewID})
}

// GenerateInterview builds the question list with the model and persists the
// interview. This is the server half of a generation-mode voice attempt.
func (h *Handler) GenerateInterview(c *gin.Context) {
	var req model.GenerateInterviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user := h.GetUserFromContext(c)
	if user == nil {
		response.Unauthorized(c, "")
		return
	}

	questions, err := h.Gemini.InterviewQuestions(c.Request.Context(), gemini.QuestionParams{
		Role:      req.Role,
		Level:     req.Level,
		Type:      string(req.Type),
		Techstack: req.Techstack,
		Amount:    req.Amount,
	})
	if err != nil {
		h.Logger.Sugar().Errorw("question generation failed", "role", req.Role, "err", err)
		response.InternalError(c, "failed to generate questions")
		return
	}

	interviewID, err := h.Repository.CreateInterview(c.Request.Context(), &model.Interview{
		UserID:    user.UserID,
		Role:      req.Role,
		Level:     req.Level,
		Type:      req.Type,
		Techstack: req.Techstack,
		Questions: questions,
		Finalized: true,
	})
	if err != nil {
		h.Logger.Sugar().Errorw("failed to create interview", "err", err)
		response.InternalError(c, "failed to create interview")
		return
	}

	response.Created(c, gin.H{"interview_id": interviewID, "questions": questions})
}

// ImportInterview fetches a job posting by URL and turns it into an
// interview.
func (h *Handler) ImportInterview(c *gin.Context) {
	var req model.ImportInterviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if req.Amount == 0 {
		req.Amount = 10
	}

	user := h.GetUserFromContext(c)
	if user == nil {
		response.Unauthorized(c, "")
		return
	}

	posting, err := h.Fetcher.Fetch(c.Request.Context(), req.URL, c.Request.UserAgent())
	if err != nil {
		response.BadRequest(c, "could not fetch job posting: "+err.Error())
		return
	}

	questions, err := h.Gemini.InterviewQuestions(c.Request.Context(), gemini.QuestionParams{
		Role:      posting.Title,
		Level:     "unspecified",
		Type:      string(model.InterviewTypeMixed),
		Techstack: []string{"see posting"},
		Amount:    req.Amount,
		Posting:   posting.Content,
	})
	if err != nil {
		h.Logger.Sugar().Errorw("question generation failed", "url", req.URL, "err", err)
		response.InternalError(c, "failed to generate questions")
		return
	}

	interviewID, err := h.Repository.CreateInterview(c.Request.Context(), &model.Interview{
		UserID:    user.UserID,
		Role:      posting.Title,
		Level:     "unspecified",
		Type:      model.InterviewTypeMixed,
		Techstack: []string{},
		Questions: questions,
		Finalized: true,
	})
	if err != nil {
		h.Logger.Sugar().Errorw("failed to create interview", "err", err)
		response.InternalError(c, "failed to create interview")
		return
	}

	response.Created(c, gin.H{"interview_id": interviewID, "questions": questions})
}

// GetInterview returns one interview by id.
func (h *Handler) GetInterview(c *gin.Context) {
	interviewID := c.Param("id")

	iv, err := h.Repository.GetInterviewByID(c.Request.Context(), interviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "interview not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to get interview", "interview_id", interviewID, "err", err)
		response.InternalError(c, "")
		return
	}

	response.OK(c, iv)
}

// ListInterviews returns the current user's interviews, newest first.
func (h *Handler) ListInterviews(c *gin.Context) {
	user := h.GetUserFromContext(c)
	if user == nil {
		response.Unauthorized(c, "")
		return
	}

	interviews, err := h.Repository.ListInterviewsByUser(c.Request.Context(), user.UserID)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list interviews", "user_id", user.UserID, "err", err)
		response.InternalError(c, "")
		return
	}

	response.OK(c, interviews)
}

// ListLatestInterviews returns finalized interviews by other users.
func (h *Handler) ListLatestInterviews(c *gin.Context) {
	var query model.ListLatestQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user := h.GetUserFromContext(c)
	if user == nil {
		response.Unauthorized(c, "")
		return
	}

	interviews, err := h.Repository.ListLatestInterviews(c.Request.Context(), user.UserID, query.Limit)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list latest interviews", "err", err)
		response.InternalError(c, "")
		return
	}

	response.OK(c, interviews)
}

// DeleteInterview removes an interview the caller owns, plus its feedback.
func (h *Handler) DeleteInterview(c *gin.Context) {
	interviewID := c.Param("id")

	user := h.GetUserFromContext(c)
	if user == nil {
		response.Unauthorized(c, "")
		return
	}

	iv, err := h.Repository.GetInterviewByID(c.Request.Context(), interviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "interview not found")
			return
		}
		response.InternalError(c, "")
		return
	}
	if iv.UserID != user.UserID {
		response.NotFound(c, "interview not found")
		return
	}

	if err := h.Repository.DeleteInterview(c.Request.Context(), interviewID); err != nil {
		h.Logger.Sugar().Errorw("failed to delete interview", "interview_id", interviewID, "err", err)
		response.InternalError(c, "")
		return
	}

	response.Message(c, "interview deleted")
}
