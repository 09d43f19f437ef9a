// Package generator produces random identifiers.
package generator

import (
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	defaultLength = 21

	// URL-safe and free of look-alike characters, so IDs can be read back
	// from a support ticket
	alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
)

// ID returns a random identifier of the given length, or of the default
// length when length is not positive.
func ID(length int) (string, error) {
	if length <= 0 {
		length = defaultLength
	}

	return gonanoid.Generate(alphabet, length)
}

// RequestID is used as the echo request ID generator. It never fails: if the
// random source errors, it falls back to a timestamp.
func RequestID() string {
	id, err := ID(defaultLength)
	if err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}

	return id
}
