package choice

import (
	"crypto/rand"
	"fmt"
	"time"
)

const (
	intentIDPrefix   = "int_"
	intentIDLength   = 6
	intentIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewIntentID generates an opaque intent identifier like "int_X7K2QD".
// Uniqueness among live intents is probabilistic: the space is large enough
// relative to human-paced intent volume that collisions are not checked.
func NewIntentID() string {
	buf := make([]byte, intentIDLength)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%sT%d", intentIDPrefix, time.Now().UnixNano()%1e9)
	}
	for i, b := range buf {
		buf[i] = intentIDAlphabet[int(b)%len(intentIDAlphabet)]
	}
	return intentIDPrefix + string(buf)
}
