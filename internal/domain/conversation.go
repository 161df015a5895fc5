package domain

// Role author of a conversation turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn single message in a vendor conversation
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// TrimTurns keeps at most window most recent turns
func TrimTurns(turns []ConversationTurn, window int) []ConversationTurn {
	if window <= 0 || len(turns) <= window {
		return turns
	}
	return turns[len(turns)-window:]
}
