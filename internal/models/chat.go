package models

// ChatPart is one text fragment of a conversation turn.
type ChatPart struct {
	Text string `json:"text"`
}

// ChatTurn represents a single message in a conversation.
type ChatTurn struct {
	Role  string     `json:"role"` // "user" or "model"
	Parts []ChatPart `json:"parts"`
}

// ChatRequest is the payload sent to the chat endpoint. History must be
// present; an empty array is a valid conversation start.
type ChatRequest struct {
	History []ChatTurn `json:"history"`
}

// ChatResponse is the reply from the AI advisor.
type ChatResponse struct {
	Message string `json:"message"`
}
