package model

import "time"

// FeedbackCategories is the fixed evaluation rubric, in presentation order.
var FeedbackCategories = [5]string{
	"Communication Skills",
	"Technical Knowledge",
	"Problem Solving",
	"Cultural Fit",
	"Confidence and Clarity",
}

type CategoryScore struct {
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

type Feedback struct {
	FeedbackID          string          `json:"feedback_id" db:"feedback_id"`
	InterviewID         string          `json:"interview_id" db:"interview_id"`
	UserID              string          `json:"user_id" db:"user_id"`
	TotalScore          int             `json:"total_score" db:"total_score"`
	CategoryScores      []CategoryScore `json:"category_scores" db:"category_scores"`
	Strengths           []string        `json:"strengths" db:"strengths"`
	AreasForImprovement []string        `json:"areas_for_improvement" db:"areas_for_improvement"`
	FinalAssessment     string          `json:"final_assessment" db:"final_assessment"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
}
