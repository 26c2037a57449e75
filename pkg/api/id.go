package api

import (
	"crypto/rand"
	"math/big"
	"regexp"
)

const (
	idLength = 24
	charset  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	transcriptIDPrefix = "chat_"
)

var transcriptIDPattern = regexp.MustCompile(`^chat_[a-zA-Z0-9]{24}$`)

// NewTranscriptID generates a new transcript ID with the "chat_" prefix
// followed by 24 cryptographically random alphanumeric characters.
func NewTranscriptID() string {
	return transcriptIDPrefix + randomAlphanumeric(idLength)
}

// ValidateTranscriptID checks whether the given string is a valid
// transcript ID (matches "chat_" + 24 alphanumeric characters).
func ValidateTranscriptID(id string) bool {
	return transcriptIDPattern.MatchString(id)
}

func randomAlphanumeric(n int) string {
	max := big.NewInt(int64(len(charset)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		b[i] = charset[idx.Int64()]
	}
	return string(b)
}
