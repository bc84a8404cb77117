package conversation

import "github.com/harunnryd/emaki/internal/trace"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the reconstructed conversation. The reconstructor
// creates messages; the pairer mutates them in place (attaching ToolResults,
// setting Hide); after pairing they are read-only.
type Message struct {
	Role    Role
	Content []ContentBlock

	// ToolResults links tool_use ids occurring in this assistant message's
	// content to the result blocks observed later in the conversation.
	ToolResults map[string]*ContentBlock

	// Hide marks user messages whose content is nothing but tool results;
	// their information is already represented on the paired assistant turn.
	Hide bool
}

// StreamReconstructor rebuilds a response object from the opaque bytes of a
// streamed response body. Implementations return nil when the payload cannot
// be parsed; callers must tolerate that.
type StreamReconstructor interface {
	Reconstruct(raw []byte) *ReconstructedResponse
}

// ReconstructedResponse is the best-effort result of replaying a raw stream
// payload. Model and Usage are optional extras for cost reporting.
type ReconstructedResponse struct {
	Content []ContentBlock
	Model   string
	Usage   *trace.Usage
}
