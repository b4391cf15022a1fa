package test

import (
	"math/rand/v2"
	"strings"
)

const (
	asciiLetters   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// RandomASCIIString returns an alphanumeric string of length in [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	minLen = max(minLen, 1)
	maxLen = max(maxLen, minLen)
	return randomFrom(asciiLetters, minLen+rand.IntN(maxLen-minLen+1))
}

// RandomPaymentReference looks like a bank transfer id, e.g. "TX-7KQ2M9PA".
func RandomPaymentReference() string {
	return "TX-" + randomFrom(referenceChars, 8)
}

func randomFrom(alphabet string, n int) string {
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(alphabet[rand.IntN(len(alphabet))])
	}
	return b.String()
}
