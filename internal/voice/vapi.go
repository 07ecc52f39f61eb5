package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/shakthishetty/Interview-Prep-Ai/internal/agent"
	"github.com/shakthishetty/Interview-Prep-Ai/pkg/model"
	"go.uber.org/zap"
)

const interviewerPrompt = `You are a professional job interviewer conducting a real-time voice interview with a candidate. Ask the following questions one at a time, listen to the answer, and move on naturally:

{{questions}}

Keep your responses short and conversational. Do not read the whole list at once.`

// Client is a Vapi voice call over a websocket. One Client carries at most
// one call at a time; Start opens a fresh event stream each time.
type Client struct {
	token   string
	baseURL string
	log     *zap.SugaredLogger

	mu     sync.Mutex
	conn   *websocket.Conn
	events chan agent.Event

	// writeMu serializes writes; the websocket connection allows only one
	// concurrent writer.
	writeMu sync.Mutex
}

func NewClient(token, baseURL string, log *zap.Logger) *Client {
	return &Client{
		token:   token,
		baseURL: baseURL,
		log:     log.Sugar(),
	}
}

// startMessage is the control frame that opens a call.
type startMessage struct {
	Type           string            `json:"type"`
	WorkflowID     string            `json:"workflowId,omitempty"`
	AssistantID    string            `json:"assistantId,omitempty"`
	Assistant      *assistantConfig  `json:"assistant,omitempty"`
	VariableValues map[string]string `json:"variableValues,omitempty"`
}

type assistantConfig struct {
	FirstMessage string `json:"firstMessage"`
	Model        struct {
		Provider string `json:"provider"`
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	} `json:"model"`
}

// serverMessage is a frame from the provider.
type serverMessage struct {
	Type           string `json:"type"`
	Role           string `json:"role,omitempty"`
	Transcript     string `json:"transcript,omitempty"`
	TranscriptType string `json:"transcriptType,omitempty"`
	Error          string `json:"error,omitempty"`
}

func interviewerAssistant(questions []string) *assistantConfig {
	formatted := make([]string, 0, len(questions))
	for _, q := range questions {
		formatted = append(formatted, "- "+q)
	}

	a := &assistantConfig{
		FirstMessage: "Hello! Thank you for taking the time to speak with me today. Let's get started.",
	}
	a.Model.Provider = "openai"
	a.Model.Model = "gpt-4"
	a.Model.Messages = []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}{{
		Role:    "system",
		Content: strings.ReplaceAll(interviewerPrompt, "{{questions}}", strings.Join(formatted, "\n")),
	}}
	return a
}

func (c *Client) Start(ctx context.Context, opts agent.StartOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return fmt.Errorf("call already in progress")
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.token)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.baseURL, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("dial voice agent: %w (status %d)", err, resp.StatusCode)
		}
		return fmt.Errorf("dial voice agent: %w", err)
	}

	start := startMessage{Type: "start", VariableValues: opts.Variables}
	switch {
	case opts.WorkflowID != "":
		start.WorkflowID = opts.WorkflowID
	case opts.AssistantID != "":
		start.AssistantID = opts.AssistantID
	case len(opts.Questions) > 0:
		start.Assistant = interviewerAssistant(opts.Questions)
	default:
		conn.Close()
		return fmt.Errorf("a workflow id, assistant id, or questions are required")
	}

	c.writeMu.Lock()
	err = conn.WriteJSON(start)
	c.writeMu.Unlock()
	if err != nil {
		conn.Close()
		return fmt.Errorf("send start frame: %w", err)
	}

	c.conn = conn
	c.events = make(chan agent.Event, 32)
	go c.readLoop(conn, c.events)
	return nil
}

// readLoop pumps provider frames into typed events until the connection
// closes. The events channel is closed on exit, which the controller treats
// as the end of the call.
func (c *Client) readLoop(conn *websocket.Conn, events chan<- agent.Event) {
	defer close(events)
	defer c.clear(conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				events <- agent.Event{Type: agent.EventCallEnd}
				return
			}
			events <- agent.Event{Type: agent.EventError, Err: err}
			return
		}

		var msg serverMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.log.Warnw("unparseable voice frame", "err", err)
			continue
		}

		switch msg.Type {
		case "call-start":
			events <- agent.Event{Type: agent.EventCallStart}
		case "call-end":
			events <- agent.Event{Type: agent.EventCallEnd}
			return
		case "speech-start":
			events <- agent.Event{Type: agent.EventSpeechStart}
		case "speech-end":
			events <- agent.Event{Type: agent.EventSpeechEnd}
		case "transcript":
			events <- agent.Event{
				Type:    agent.EventTranscript,
				Role:    model.Role(msg.Role),
				Text:    msg.Transcript,
				IsFinal: msg.TranscriptType == "final",
			}
		case "error":
			events <- agent.Event{Type: agent.EventError, Err: fmt.Errorf("voice agent: %s", msg.Error)}
		default:
			// status-update, metadata and friends are not interesting here
		}
	}
}

func (c *Client) clear(conn *websocket.Conn) {
	conn.Close()
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	c.mu.Unlock()
}

// Stop ends the call. The provider answers with a close frame, which ends
// the read loop and the event stream.
func (c *Client) Stop() error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return nil
	}

	c.writeMu.Lock()
	err := conn.WriteJSON(map[string]string{"type": "stop"})
	c.writeMu.Unlock()
	if err != nil {
		conn.Close()
		return fmt.Errorf("send stop frame: %w", err)
	}
	return nil
}

func (c *Client) Events() <-chan agent.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events
}
