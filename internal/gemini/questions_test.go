package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestInterviewQuestions(t *testing.T) {
	var gotReq GenerateRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(candidateBody(`["What is a goroutine?","Explain channels.","How does the GC work?"]`)))
	})

	questions, err := c.InterviewQuestions(context.Background(), QuestionParams{
		Role:      "Backend Engineer",
		Level:     "Senior",
		Type:      "technical",
		Techstack: []string{"Go", "PostgreSQL"},
		Amount:    3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(questions))
	}
	if questions[0] != "What is a goroutine?" {
		t.Errorf("questions[0] = %q", questions[0])
	}

	prompt := gotReq.Contents[0].Parts[0].Text
	for _, want := range []string{"Backend Engineer", "Senior", "Go, PostgreSQL", "technical", "voice assistant"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestInterviewQuestions_PostingIsEmbeddedAndBounded(t *testing.T) {
	var gotReq GenerateRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(candidateBody(`["q1"]`)))
	})

	_, err := c.InterviewQuestions(context.Background(), QuestionParams{
		Role:    "Engineer",
		Level:   "Junior",
		Type:    "mixed",
		Amount:  1,
		Posting: strings.Repeat("x", 20000),
	})
	if err != nil {
		t.Fatal(err)
	}

	prompt := gotReq.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "job posting") {
		t.Error("prompt missing the posting section")
	}
	if got := strings.Count(prompt, "x"); got != 10000 {
		t.Errorf("posting text length = %d, want truncated to 10000", got)
	}
}

func TestInterviewQuestions_EmptyResult(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(candidateBody(`[]`)))
	})

	if _, err := c.InterviewQuestions(context.Background(), QuestionParams{Role: "Engineer", Amount: 3}); err == nil {
		t.Fatal("expected error for an empty question list")
	}
}
