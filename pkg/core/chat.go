package core

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage is one turn of an AI conversation.
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// AIStatus describes the connection to the language-model server.
type AIStatus struct {
	Connected bool   `json:"connected"`
	Model     string `json:"model,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ChatHistory is a persisted conversation, optionally tied to a note.
type ChatHistory struct {
	ID        string        `json:"id"`
	NoteID    string        `json:"noteId,omitempty"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt string        `json:"createdAt"`
}
