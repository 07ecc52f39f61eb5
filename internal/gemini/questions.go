package gemini

import (
	"context"
	"fmt"
	"strings"
)

type QuestionParams struct {
	Role      string
	Level     string
	Type      string // technical | behavioural | mixed
	Techstack []string
	Amount    int
	// Posting is optional job-posting text that grounds the questions.
	Posting string
}

// InterviewQuestions asks the model for a ready-to-read question list for a
// voice interview.
func (c *Client) InterviewQuestions(ctx context.Context, p QuestionParams) ([]string, error) {
	prompt := fmt.Sprintf(`Prepare questions for a job interview.
The job role is %s.
The job experience level is %s.
The tech stack used in the job is: %s.
The focus between behavioural and technical questions should lean towards: %s.
The amount of questions required is: %d.
Please return only the questions, without any additional text.
The questions are going to be read by a voice assistant so do not use "/" or "*" or any other special characters which might break the voice assistant.`,
		p.Role, p.Level, strings.Join(p.Techstack, ", "), p.Type, p.Amount)

	if posting := strings.TrimSpace(p.Posting); posting != "" {
		if len(posting) > 10000 {
			posting = posting[:10000]
		}
		prompt += fmt.Sprintf("\n\nBase the questions on this job posting:\n%s", posting)
	}

	var questions []string
	schema := ArrayN(String(), 1, p.Amount)
	if err := c.GenerateObject(ctx, "", prompt, schema, &questions); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions returned")
	}
	return questions, nil
}
