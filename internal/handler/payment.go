package handler

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/payment"
	"github.com/shakthishetty/Interview-Prep-Ai/pkg/response"
)

// CreateCheckout opens a lifetime-access checkout session. This is the one
// flow where a failure surfaces as an error instead of a silent redirect.
func (h *Handler) CreateCheckout(c *gin.Context) {
	user := h.GetUserFromContext(c)
	if user == nil {
		response.Unauthorized(c, "")
		return
	}
	if user.HasPaid {
		response.Conflict(c, "lifetime access already purchased")
		return
	}

	sessionID, err := h.Payments.CreateCheckoutSession(c.Request.Context(), payment.CheckoutInput{
		UserID:    user.UserID,
		UserEmail: user.Email,
		UserName:  user.Name,
	})
	if err != nil {
		h.Logger.Sugar().Errorw("checkout session creation failed", "user_id", user.UserID, "err", err)
		response.InternalError(c, "failed to create checkout session")
		return
	}

	response.OK(c, gin.H{"session_id": sessionID})
}

// StripeWebhook verifies the provider signature and marks the user paid on a
// completed checkout. A bad signature rejects the request without touching
// any state.
func (h *Handler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "could not read payload")
		return
	}

	completed, err := h.Payments.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.Logger.Sugar().Warnw("webhook verification failed", "err", err)
		response.BadRequest(c, "invalid signature")
		return
	}
	if completed == nil || completed.UserID == "" {
		// not a checkout completion, acknowledge and move on
		response.OK(c, gin.H{"received": true})
		return
	}

	if err := h.Repository.MarkUserPaid(c.Request.Context(), completed.UserID, completed.StripeCustomerID, time.Now()); err != nil {
		h.Logger.Sugar().Errorw("failed to mark user paid", "user_id", completed.UserID, "err", err)
		response.InternalError(c, "webhook processing failed")
		return
	}

	h.Logger.Sugar().Infow("payment processed", "user_id", completed.UserID)
	response.OK(c, gin.H{"received": true})
}
