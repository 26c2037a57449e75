package api

import "testing"

func TestAPIErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "config error",
			err:  NewConfigError("credential is not set"),
			want: "config_error: credential is not set",
		},
		{
			name: "invalid request with param",
			err:  NewInvalidRequestError("model", "model is required"),
			want: "invalid_request: model is required (param: model)",
		},
		{
			name: "transport error",
			err:  NewTransportError("401 Authorization Required"),
			want: "transport_error: 401 Authorization Required",
		},
		{
			name: "decode error",
			err:  NewDecodeError("stream produced no parsable chunks"),
			want: "decode_error: stream produced no parsable chunks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
