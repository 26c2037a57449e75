package openai

import "github.com/plauderhq/plauder/pkg/provider"

// DefaultEndpoint is the Chat Completions endpoint for api.openai.com.
const DefaultEndpoint = "https://api.openai.com/v1/chat/completions"

// defaultModels lists the models the adapter serves when the
// configuration does not narrow the set.
var defaultModels = []string{
	"gpt-4o",
	"gpt-4o-mini",
	"gpt-4-turbo",
	"gpt-4",
	"gpt-3.5-turbo",
}

// Config holds configuration for the OpenAI adapter.
type Config struct {
	// Endpoint is the Chat Completions URL. Required.
	Endpoint string

	// Credential authenticates transport requests.
	Credential provider.Credential

	// Models narrows the supported model set. Empty means the
	// adapter's built-in default set.
	Models []string

	// DefaultModel is used when a payload omits the model. Defaults
	// to the first entry of the model set.
	DefaultModel string
}

// DefaultConfig returns a Config pointed at api.openai.com.
func DefaultConfig(cred provider.Credential) Config {
	return Config{
		Endpoint:   DefaultEndpoint,
		Credential: cred,
	}
}
