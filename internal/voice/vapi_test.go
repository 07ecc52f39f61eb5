package voice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/agent"
	"github.com/shakthishetty/Interview-Prep-Ai/pkg/model"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{}

// fakeProvider is a websocket server that records the start frame and then
// plays back a scripted list of frames.
type fakeProvider struct {
	t      *testing.T
	script []string
	hold   bool // keep the connection open after the script
	starts chan startMessage
	auth   chan string
}

func newFakeProvider(t *testing.T, script ...string) (*fakeProvider, string) {
	p := &fakeProvider{
		t:      t,
		script: script,
		starts: make(chan startMessage, 1),
		auth:   make(chan string, 1),
	}
	srv := httptest.NewServer(http.HandlerFunc(p.handle))
	t.Cleanup(srv.Close)
	return p, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func (p *fakeProvider) handle(w http.ResponseWriter, r *http.Request) {
	p.auth <- r.Header.Get("Authorization")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		p.t.Errorf("upgrade: %v", err)
		return
	}
	defer conn.Close()

	var start startMessage
	if err := conn.ReadJSON(&start); err != nil {
		// the client may close without starting a call
		return
	}
	p.starts <- start

	for _, frame := range p.script {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
			return
		}
	}

	if p.hold {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
}

func collectEvents(t *testing.T, events <-chan agent.Event, n int) []agent.Event {
	t.Helper()
	var got []agent.Event
	timeout := time.After(2 * time.Second)
	for len(got) < n {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatalf("event stream closed after %d events, want %d", len(got), n)
			}
			got = append(got, ev)
		case <-timeout:
			t.Fatalf("timed out after %d events, want %d", len(got), n)
		}
	}
	return got
}

func TestStart_SendsWorkflowStartFrame(t *testing.T) {
	provider, url := newFakeProvider(t)
	c := NewClient("tok-123", url, zap.NewNop())

	err := c.Start(context.Background(), agent.StartOptions{
		WorkflowID: "wf-1",
		Variables:  map[string]string{"username": "Jordan"},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Stop()

	if got := <-provider.auth; got != "Bearer tok-123" {
		t.Errorf("authorization = %q, want %q", got, "Bearer tok-123")
	}
	start := <-provider.starts
	if start.Type != "start" || start.WorkflowID != "wf-1" {
		t.Errorf("start frame = %+v, want type=start workflowId=wf-1", start)
	}
	if start.Assistant != nil {
		t.Error("workflow start must not carry an inline assistant")
	}
	if start.VariableValues["username"] != "Jordan" {
		t.Errorf("variables = %v, want username=Jordan", start.VariableValues)
	}
}

func TestStart_SendsAssistantWithQuestions(t *testing.T) {
	provider, url := newFakeProvider(t)
	c := NewClient("tok", url, zap.NewNop())

	err := c.Start(context.Background(), agent.StartOptions{
		Questions: []string{"What is a goroutine?", "Explain channels."},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Stop()

	start := <-provider.starts
	if start.Assistant == nil {
		t.Fatal("expected an inline assistant for question mode")
	}
	prompt := start.Assistant.Model.Messages[0].Content
	if !strings.Contains(prompt, "- What is a goroutine?") || !strings.Contains(prompt, "- Explain channels.") {
		t.Errorf("assistant prompt missing questions: %q", prompt)
	}
}

func TestStart_RequiresWorkflowOrQuestions(t *testing.T) {
	_, url := newFakeProvider(t)
	c := NewClient("tok", url, zap.NewNop())

	if err := c.Start(context.Background(), agent.StartOptions{}); err == nil {
		t.Fatal("expected error without workflow id or questions")
	}
}

func TestReadLoop_MapsProviderFrames(t *testing.T) {
	_, url := newFakeProvider(t,
		`{"type":"call-start"}`,
		`{"type":"speech-start"}`,
		`{"type":"transcript","role":"assistant","transcript":"Tell me about","transcriptType":"partial"}`,
		`{"type":"transcript","role":"assistant","transcript":"Tell me about yourself.","transcriptType":"final"}`,
		`{"type":"speech-end"}`,
		`{"type":"status-update","status":"in-progress"}`,
		`{"type":"call-end"}`,
	)
	c := NewClient("tok", url, zap.NewNop())

	if err := c.Start(context.Background(), agent.StartOptions{WorkflowID: "wf-1"}); err != nil {
		t.Fatal(err)
	}

	got := collectEvents(t, c.Events(), 6)
	wantTypes := []agent.EventType{
		agent.EventCallStart,
		agent.EventSpeechStart,
		agent.EventTranscript,
		agent.EventTranscript,
		agent.EventSpeechEnd,
		agent.EventCallEnd,
	}
	for i, want := range wantTypes {
		if got[i].Type != want {
			t.Errorf("event[%d].Type = %q, want %q", i, got[i].Type, want)
		}
	}

	partial, final := got[2], got[3]
	if partial.IsFinal {
		t.Error("partial transcript marked final")
	}
	if !final.IsFinal {
		t.Error("final transcript not marked final")
	}
	if final.Role != model.RoleAssistant || final.Text != "Tell me about yourself." {
		t.Errorf("final transcript = %+v", final)
	}
}

func TestReadLoop_NormalClosureIsCallEnd(t *testing.T) {
	_, url := newFakeProvider(t) // no frames, immediate close
	c := NewClient("tok", url, zap.NewNop())

	if err := c.Start(context.Background(), agent.StartOptions{WorkflowID: "wf-1"}); err != nil {
		t.Fatal(err)
	}

	got := collectEvents(t, c.Events(), 1)
	if got[0].Type != agent.EventCallEnd {
		t.Errorf("event type = %q, want %q", got[0].Type, agent.EventCallEnd)
	}

	select {
	case _, ok := <-c.Events():
		if ok {
			t.Error("expected the event stream to close after call end")
		}
	case <-time.After(2 * time.Second):
		t.Error("event stream not closed after call end")
	}
}

func TestStart_SendsAssistantIDStartFrame(t *testing.T) {
	provider, url := newFakeProvider(t)
	c := NewClient("tok", url, zap.NewNop())

	err := c.Start(context.Background(), agent.StartOptions{AssistantID: "asst-1"})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Stop()

	start := <-provider.starts
	if start.AssistantID != "asst-1" {
		t.Errorf("assistant id = %q, want %q", start.AssistantID, "asst-1")
	}
	if start.WorkflowID != "" || start.Assistant != nil {
		t.Errorf("start frame = %+v, want assistant id only", start)
	}
}

func TestStop_Concurrent(t *testing.T) {
	provider := &fakeProvider{t: t, hold: true, starts: make(chan startMessage, 1), auth: make(chan string, 1)}
	srv := httptest.NewServer(http.HandlerFunc(provider.handle))
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	c := NewClient("tok", url, zap.NewNop())
	if err := c.Start(context.Background(), agent.StartOptions{WorkflowID: "wf-1"}); err != nil {
		t.Fatal(err)
	}
	<-provider.starts

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Stop()
		}()
	}
	wg.Wait()
}

func TestReadLoop_ErrorFrame(t *testing.T) {
	_, url := newFakeProvider(t, `{"type":"error","error":"assistant crashed"}`)
	c := NewClient("tok", url, zap.NewNop())

	if err := c.Start(context.Background(), agent.StartOptions{WorkflowID: "wf-1"}); err != nil {
		t.Fatal(err)
	}

	got := collectEvents(t, c.Events(), 1)
	if got[0].Type != agent.EventError {
		t.Fatalf("event type = %q, want %q", got[0].Type, agent.EventError)
	}
	if got[0].Err == nil || !strings.Contains(got[0].Err.Error(), "assistant crashed") {
		t.Errorf("err = %v, want the provider message", got[0].Err)
	}
}
