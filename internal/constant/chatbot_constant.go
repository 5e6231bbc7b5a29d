package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	// Titles are cut from the first prompt of a session.
	ChatSessionTitleMaxLength = 30

	ChatEmptyResponseFallback = "No response from AI."
)
