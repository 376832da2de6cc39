package wp

import (
	"crypto/sha1"
	"encoding/base64"
	"strconv"
)

// Validator returns the strong entity tag for body: the quoted base64 SHA-1 of
// its bytes.
func Validator(body []byte) string {
	sum := sha1.Sum(body)
	return `"` + base64.StdEncoding.EncodeToString(sum[:]) + `"`
}

// Snapshot is a counter value together with its wire representation.
type Snapshot struct {
	Value     uint64
	Text      string
	Validator string
}

func NewSnapshot(value uint64) Snapshot {
	text := strconv.FormatUint(value, 10)
	return Snapshot{
		Value:     value,
		Text:      text,
		Validator: Validator([]byte(text)),
	}
}

// Matches reports whether token is byte for byte the snapshot's validator.
func (s Snapshot) Matches(token string) bool {
	return token == s.Validator
}
