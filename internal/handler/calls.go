package handler

import (
	"context"
	"errors"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/agent"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/repository"
	"github.com/shakthishetty/Interview-Prep-Ai/pkg/response"
)

// CallRegistry tracks live interview attempts, one per user.
type CallRegistry struct {
	// NewAgent builds a fresh voice connection per attempt.
	NewAgent func() agent.VoiceAgent

	mu     sync.Mutex
	byID   map[string]*callEntry
	byUser map[string]string
}

type callEntry struct {
	id     string
	userID string
	ctrl   *agent.Controller
	cancel context.CancelFunc
}

func NewCallRegistry(newAgent func() agent.VoiceAgent) *CallRegistry {
	return &CallRegistry{
		NewAgent: newAgent,
		byID:     map[string]*callEntry{},
		byUser:   map[string]string{},
	}
}

var errCallInProgress = errors.New("a call is already in progress")

// add registers a new attempt for the user, replacing a finished one.
func (r *CallRegistry) add(userID string, ctrl *agent.Controller, cancel context.CancelFunc) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prevID, ok := r.byUser[userID]; ok {
		prev := r.byID[prevID]
		if prev != nil && prev.ctrl.Snapshot().Status != agent.StatusFinished {
			return "", errCallInProgress
		}
		delete(r.byID, prevID)
	}

	id := uuid.New().String()
	entry := &callEntry{id: id, userID: userID, ctrl: ctrl, cancel: cancel}
	r.byID[id] = entry
	r.byUser[userID] = id
	return id, nil
}

// remove drops an attempt that never got off the ground.
func (r *CallRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.byID[id]
	if !ok {
		return
	}
	delete(r.byID, id)
	if r.byUser[entry.userID] == id {
		delete(r.byUser, entry.userID)
	}
}

func (r *CallRegistry) get(id string) *callEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id]
}

type startCallReq struct {
	Mode        agent.Mode `json:"mode" binding:"required,oneof=generate interview"`
	InterviewID string     `json:"interview_id"`
}

// StartCall opens a live voice attempt for the current user.
func (h *Handler) StartCall(c *gin.Context) {
	var req startCallReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user := h.GetUserFromContext(c)
	if user == nil {
		response.Unauthorized(c, "")
		return
	}

	cfg := agent.Config{
		Mode:     req.Mode,
		UserID:   user.UserID,
		UserName: user.Name,
	}
	switch req.Mode {
	case agent.ModeGenerate:
		cfg.WorkflowID = h.VapiWorkflowID
		cfg.AssistantID = h.VapiAssistantID
	case agent.ModeInterview:
		if req.InterviewID == "" {
			response.BadRequest(c, "interview_id is required for an interview call")
			return
		}
		iv, err := h.Repository.GetInterviewByID(c.Request.Context(), req.InterviewID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.NotFound(c, "interview not found")
				return
			}
			response.InternalError(c, "")
			return
		}
		cfg.InterviewID = iv.InterviewID
		cfg.Questions = iv.Questions
	}

	// the attempt outlives the start request
	ctx, cancel := context.WithCancel(context.Background())
	ctrl := agent.NewController(cfg, h.Calls.NewAgent(), h.Generator, h.Logger)

	callID, err := h.Calls.add(user.UserID, ctrl, cancel)
	if err != nil {
		cancel()
		response.Conflict(c, err.Error())
		return
	}

	if err := ctrl.Start(ctx); err != nil {
		cancel()
		h.Calls.remove(callID)
		if errors.Is(err, agent.ErrNotConfigured) {
			response.BadRequest(c, err.Error())
			return
		}
		h.Logger.Sugar().Errorw("failed to start call", "err", err)
		response.InternalError(c, "failed to start call")
		return
	}

	response.Created(c, gin.H{"call_id": callID, "status": ctrl.Snapshot().Status})
}

// GetCall reports the live status of an attempt, including the outcome once
// it finishes.
func (h *Handler) GetCall(c *gin.Context) {
	user := h.GetUserFromContext(c)
	if user == nil {
		response.Unauthorized(c, "")
		return
	}

	entry := h.Calls.get(c.Param("id"))
	if entry == nil || entry.userID != user.UserID {
		response.NotFound(c, "call not found")
		return
	}

	response.OK(c, entry.ctrl.Snapshot())
}

// DisconnectCall ends the attempt and waits for terminal dispatch, returning
// where the client should navigate.
func (h *Handler) DisconnectCall(c *gin.Context) {
	user := h.GetUserFromContext(c)
	if user == nil {
		response.Unauthorized(c, "")
		return
	}

	entry := h.Calls.get(c.Param("id"))
	if entry == nil || entry.userID != user.UserID {
		response.NotFound(c, "call not found")
		return
	}

	entry.ctrl.Disconnect(c.Request.Context())
	entry.cancel()

	response.OK(c, entry.ctrl.Snapshot())
}
