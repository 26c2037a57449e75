package provider

// BearerArgs builds the transport argument list shared by the Chat
// Completions family of adapters: the target URL, a bearer
// authorization header, and a content-type header declaring the
// streaming event format. The order and exact header text are consumed
// verbatim by the transport-launch collaborator and must stay fixed.
func BearerArgs(endpoint string, cred Credential) []string {
	return []string{
		endpoint,
		"-H",
		"authorization: Bearer " + cred.Value,
		"content-type: text/event-stream",
	}
}
