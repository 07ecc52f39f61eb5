package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/repository"
	"github.com/shakthishetty/Interview-Prep-Ai/pkg/response"
)

// GetFeedback returns the caller's feedback for one interview, looked up by
// equality on the (interview_id, user_id) pair.
func (h *Handler) GetFeedback(c *gin.Context) {
	interviewID := c.Param("id")

	user := h.GetUserFromContext(c)
	if user == nil {
		response.Unauthorized(c, "")
		return
	}

	fb, err := h.Repository.GetFeedbackByInterview(c.Request.Context(), interviewID, user.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "feedback not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to get feedback", "interview_id", interviewID, "err", err)
		response.InternalError(c, "")
		return
	}

	response.OK(c, fb)
}
