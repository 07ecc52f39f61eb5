package model

type Role string

const (
	RoleUser      Role = "user"
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
)

// TranscriptEntry is one finalized utterance from a live call. Entries are
// append-only and keep their arrival order; they are never edited afterwards.
type TranscriptEntry struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
