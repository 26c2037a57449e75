package api

import "encoding/json"

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ValidRole reports whether s is one of the three known roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message is a single entry in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Payload is an outgoing chat-completion request body. Params carries
// provider-specific parameters (temperature, top_p, ...) that the
// adapter's preprocessor filters against its allow-list before
// transmission.
type Payload struct {
	Model    string         `json:"model"`
	Messages []Message      `json:"messages"`
	Params   map[string]any `json:"-"`
}

// Clone returns a deep copy of the payload. Preprocessing operates on
// a clone so callers keep their original untouched.
func (p *Payload) Clone() *Payload {
	out := &Payload{
		Model:    p.Model,
		Messages: make([]Message, len(p.Messages)),
	}
	copy(out.Messages, p.Messages)
	if p.Params != nil {
		out.Params = make(map[string]any, len(p.Params))
		for k, v := range p.Params {
			out.Params[k] = v
		}
	}
	return out
}

// MarshalJSON flattens Params into the top-level object alongside
// model and messages, matching the chat-completion wire format. The
// model and messages keys always win over same-named params.
func (p *Payload) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, len(p.Params)+2)
	for k, v := range p.Params {
		body[k] = v
	}
	body["model"] = p.Model
	body["messages"] = p.Messages
	return json.Marshal(body)
}

// PrependSystemPrompt returns msgs with a leading system message when
// prompt is non-empty. An empty prompt returns msgs unchanged. The
// input slice is never mutated; existing messages keep their order.
func PrependSystemPrompt(msgs []Message, prompt string) []Message {
	if prompt == "" {
		return msgs
	}
	out := make([]Message, 0, len(msgs)+1)
	out = append(out, Message{Role: RoleSystem, Content: prompt})
	return append(out, msgs...)
}
