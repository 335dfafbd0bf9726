package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
)

const (
	ParseStatusQueued     = "queued"
	ParseStatusProcessing = "processing"
	ParseStatusDone       = "done"
	ParseStatusError      = "error"
)

const (
	MemoryTypePreference   = "preference"
	MemoryTypeFact         = "fact"
	MemoryTypeObservation  = "observation"
	MemoryTypeActionResult = "action_result"
)
