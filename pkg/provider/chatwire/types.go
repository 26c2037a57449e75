package chatwire

// ObjectChunk is the discriminator value identifying a streaming chunk.
const ObjectChunk = "chat.completion.chunk"

// doneSentinel terminates a Chat Completions stream.
const doneSentinel = "[DONE]"

// chunk mirrors one streamed Chat Completions object:
//
//	{"object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":"..."},"finish_reason":null}]}
//
// Every field is optional on the wire; absent fields decode to their
// zero value so missing keys at any nesting level never raise.
type chunk struct {
	Object  string   `json:"object"`
	Choices []choice `json:"choices"`
}

type choice struct {
	Index        int     `json:"index"`
	Delta        delta   `json:"delta"`
	FinishReason *string `json:"finish_reason"`
}

type delta struct {
	Role    string  `json:"role,omitempty"`
	Content *string `json:"content,omitempty"`
}

// errorEnvelope mirrors the JSON error body OpenAI-compatible backends
// return on failed requests.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
