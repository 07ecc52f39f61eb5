package model

import "time"

type InterviewType string

const (
	InterviewTypeTechnical  InterviewType = "technical"
	InterviewTypeBehavioral InterviewType = "behavioural"
	InterviewTypeMixed      InterviewType = "mixed"
)

type Interview struct {
	InterviewID string        `json:"interview_id" db:"interview_id"`
	UserID      string        `json:"user_id" db:"user_id"`
	Role        string        `json:"role" db:"role"`
	Level       string        `json:"level" db:"level"`
	Type        InterviewType `json:"type" db:"type"`
	Techstack   []string      `json:"techstack" db:"techstack"`
	Questions   []string      `json:"questions" db:"questions"`
	Finalized   bool          `json:"finalized" db:"finalized"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

type CreateInterviewReq struct {
	Role      string        `json:"role" binding:"required"`
	Level     string        `json:"level" binding:"required"`
	Type      InterviewType `json:"type" binding:"required"`
	Techstack []string      `json:"techstack" binding:"required,min=1"`
	Questions []string      `json:"questions" binding:"required,min=1"`
}

// GenerateInterviewReq is the server half of a "generation mode" attempt:
// the voice workflow collects these fields, then posts them here to have
// the question list produced and the interview persisted.
type GenerateInterviewReq struct {
	Role      string        `json:"role" binding:"required"`
	Level     string        `json:"level" binding:"required"`
	Type      InterviewType `json:"type" binding:"required"`
	Techstack []string      `json:"techstack" binding:"required,min=1"`
	Amount    int           `json:"amount" binding:"required,min=1,max=20"`
}

type ImportInterviewReq struct {
	URL    string `json:"url" binding:"required,url"`
	Amount int    `json:"amount" binding:"omitempty,min=1,max=20"`
}

type ListLatestQuery struct {
	Limit int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}
