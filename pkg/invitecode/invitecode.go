// Package invitecode generates short, human-shareable team invite codes.
package invitecode

import (
	"crypto/rand"
	"fmt"
)

// Alphabet excludes the visually ambiguous I, O, 0 and 1.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Length is the number of characters in a generated code.
const Length = 6

// Generate returns a random code of Length characters drawn uniformly from Alphabet.
// Uniqueness is not guaranteed; callers rely on the storage constraint and retry.
func Generate() (string, error) {
	return generate(Length)
}

func generate(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	// len(Alphabet) is 32, so masking the low five bits keeps the draw uniform.
	for i, b := range buf {
		buf[i] = Alphabet[b&31]
	}
	return string(buf), nil
}

// Normalize upper-cases and trims a user-entered code.
func Normalize(code string) string {
	out := make([]byte, 0, len(code))
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			continue
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

// Valid reports whether code has the generator's length and alphabet.
func Valid(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if !inAlphabet(code[i]) {
			return false
		}
	}
	return true
}

func inAlphabet(c byte) bool {
	for i := 0; i < len(Alphabet); i++ {
		if Alphabet[i] == c {
			return true
		}
	}
	return false
}
