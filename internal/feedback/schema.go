package feedback

import (
	"fmt"
	"strings"

	"github.com/shakthishetty/Interview-Prep-Ai/internal/gemini"
	"github.com/shakthishetty/Interview-Prep-Ai/pkg/model"
)

const systemInstruction = "You are a professional interviewer analyzing a mock interview. " +
	"Provide detailed, constructive feedback based on the conversation transcript."

// evaluation mirrors the JSON object the model is asked to return.
type evaluation struct {
	TotalScore          int                   `json:"totalScore"`
	CategoryScores      []model.CategoryScore `json:"categoryScores"`
	Strengths           []string              `json:"strengths"`
	AreasForImprovement []string              `json:"areasForImprovement"`
	FinalAssessment     string                `json:"finalAssessment"`
}

func evaluationSchema() *gemini.Schema {
	return gemini.Object(map[string]*gemini.Schema{
		"totalScore": gemini.Integer(),
		"categoryScores": gemini.ArrayN(gemini.Object(map[string]*gemini.Schema{
			"name":    gemini.String(),
			"score":   gemini.Integer(),
			"comment": gemini.String(),
		}, "name", "score", "comment"), 5, 5),
		"strengths":           gemini.ArrayN(gemini.String(), 3, 0),
		"areasForImprovement": gemini.ArrayN(gemini.String(), 3, 0),
		"finalAssessment":     gemini.String(),
	}, "totalScore", "categoryScores", "strengths", "areasForImprovement", "finalAssessment")
}

// formatTranscript renders the transcript as "- {role}: {content}" lines in
// arrival order.
func formatTranscript(transcript []model.TranscriptEntry) string {
	var b strings.Builder
	for _, entry := range transcript {
		fmt.Fprintf(&b, "- %s: %s\n", entry.Role, entry.Content)
	}
	return b.String()
}

func evaluationPrompt(formattedTranscript string) string {
	return fmt.Sprintf(`You are an AI interviewer analyzing a mock interview. Your task is to evaluate the candidate based on structured categories. Be thorough and detailed in your analysis. Don't be lenient with the candidate. If there are mistakes or areas for improvement, point them out.

Transcript:
%s

Please provide a comprehensive evaluation with:

1. A totalScore from 0-100 (overall performance)

2. Exactly 5 categoryScores, each with name, score (0-100), and detailed comment:
   - "Communication Skills": Clarity, articulation, structured responses
   - "Technical Knowledge": Understanding of key concepts for the role
   - "Problem Solving": Ability to analyze problems and propose solutions
   - "Cultural Fit": Alignment with company values and job role
   - "Confidence and Clarity": Confidence in responses, engagement, and clarity

3. At least 3 strengths (specific positive points)

4. At least 3 areasForImprovement (specific areas to work on)

5. A finalAssessment (minimum 50 characters, comprehensive summary)

Be specific and constructive in your feedback.`, formattedTranscript)
}

// validateEvaluation re-checks the model output against the rubric. Failures
// are reported but never block persistence.
func validateEvaluation(ev *evaluation) error {
	if ev.TotalScore < 0 || ev.TotalScore > 100 {
		return fmt.Errorf("totalScore %d out of range", ev.TotalScore)
	}
	if len(ev.CategoryScores) != len(model.FeedbackCategories) {
		return fmt.Errorf("expected %d category scores, got %d", len(model.FeedbackCategories), len(ev.CategoryScores))
	}
	for i, cs := range ev.CategoryScores {
		if cs.Name != model.FeedbackCategories[i] {
			return fmt.Errorf("category %d is %q, want %q", i, cs.Name, model.FeedbackCategories[i])
		}
		if cs.Score < 0 || cs.Score > 100 {
			return fmt.Errorf("category %q score %d out of range", cs.Name, cs.Score)
		}
	}
	if len(ev.Strengths) < 3 {
		return fmt.Errorf("expected at least 3 strengths, got %d", len(ev.Strengths))
	}
	if len(ev.AreasForImprovement) < 3 {
		return fmt.Errorf("expected at least 3 areas for improvement, got %d", len(ev.AreasForImprovement))
	}
	if len(ev.FinalAssessment) < 50 {
		return fmt.Errorf("final assessment too short (%d chars)", len(ev.FinalAssessment))
	}
	return nil
}
