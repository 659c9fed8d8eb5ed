package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateTransactionID returns a ledger transaction id unique enough
// for the external uniqueness constraint: a TR prefix, the trailing
// digits of the current unix-nano clock and random hex.
func GenerateTransactionID() string {
	b := make([]byte, 3)
	_, _ = rand.Read(b)
	nanos := fmt.Sprintf("%d", time.Now().UnixNano())
	if len(nanos) > 10 {
		nanos = nanos[len(nanos)-10:]
	}
	return "TR" + nanos + hex.EncodeToString(b)
}

// GenerateOrderID returns a random 10-digit numeric order identifier.
// Uniqueness against existing orders is the caller's responsibility.
func GenerateOrderID() string {
	b := make([]byte, 10)
	_, _ = rand.Read(b)
	digits := make([]byte, 10)
	for i, v := range b {
		digits[i] = '0' + v%10
	}
	return string(digits)
}
