package feedback

import "github.com/shakthishetty/Interview-Prep-Ai/pkg/model"

// fallbackEvaluation is the canned payload substituted when the hosted model
// cannot produce a result, so the user-visible flow always completes.
func fallbackEvaluation() *evaluation {
	return &evaluation{
		TotalScore: 75,
		CategoryScores: []model.CategoryScore{
			{Name: "Communication Skills", Score: 80, Comment: "Good verbal communication skills demonstrated."},
			{Name: "Technical Knowledge", Score: 70, Comment: "Adequate technical understanding shown."},
			{Name: "Problem Solving", Score: 75, Comment: "Reasonable problem-solving approach."},
			{Name: "Cultural Fit", Score: 80, Comment: "Appears to align well with company culture."},
			{Name: "Confidence and Clarity", Score: 70, Comment: "Shows confidence in responses."},
		},
		Strengths:           []string{"Good communication", "Technical competence", "Problem-solving skills"},
		AreasForImprovement: []string{"More technical depth needed", "Improve confidence", "Better examples"},
		FinalAssessment:     "Overall a solid candidate with good potential. Some areas need improvement but shows promise for growth.",
	}
}
