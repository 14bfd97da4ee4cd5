package types

// MessageType identifies a message sent from the orchestrator to the display layer
type MessageType string

// Message types
const (
	MessageRequestContext MessageType = "REQUEST_CONTEXT"
	MessageStatus         MessageType = "STATUS"
	MessageReady          MessageType = "READY"
	MessageError          MessageType = "ERROR"
)

// StatusLoading is the status sent at the start of every run
const StatusLoading = "loading"

// Bundle is the success payload of a run
type Bundle struct {
	Summary        string         `json:"summary"`
	Original       string         `json:"original"`
	Context        string         `json:"context"`
	Classification Classification `json:"classification"`
	Replies        []string       `json:"replies"`
	Research       ResearchResult `json:"research"`
}

// Message is a one-way display command. RunID increases with every run so
// receivers can drop messages that belong to a superseded run.
type Message struct {
	Type    MessageType `json:"type"`
	RunID   uint64      `json:"runId"`
	Status  string      `json:"status,omitempty"`
	Message string      `json:"message,omitempty"`
	Bundle  *Bundle     `json:"bundle,omitempty"`
}
