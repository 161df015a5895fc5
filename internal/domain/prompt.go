package domain

// PromptRole author of a prompt message sent to the language model
type PromptRole string

const (
	PromptRoleUser  PromptRole = "user"
	PromptRoleModel PromptRole = "model"
)

// PromptMessage single message of a model conversation
type PromptMessage struct {
	Role PromptRole
	Text string
}

// CompletionRequest model call: system instruction, ordered messages (the last one is the new request)
// and sampling settings.
type CompletionRequest struct {
	System       string
	Messages     []PromptMessage
	Temperature  float32
	JSONResponse bool
}
