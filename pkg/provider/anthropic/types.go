package anthropic

// Event type discriminators for the Messages API stream.
const (
	eventContentBlockDelta = "content_block_delta"
	eventMessageStop       = "message_stop"
	eventError             = "error"
)

// streamEvent mirrors one streamed Messages API object:
//
//	{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"..."}}
//	{"type":"message_stop"}
//
// All fields are optional on the wire; missing keys decode to zero
// values so absence anywhere in the path never raises.
type streamEvent struct {
	Type  string      `json:"type"`
	Index int         `json:"index"`
	Delta *blockDelta `json:"delta,omitempty"`
	Error *apiError   `json:"error,omitempty"`
}

type blockDelta struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// apiError is the structured error channel the Messages API provides:
// a JSON envelope instead of a bare status line.
type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
