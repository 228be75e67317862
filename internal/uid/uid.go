// Package uid supplies identifiers for generated records.
//
// Identifiers are 11 characters drawn from [A-Za-z0-9], the first of
// which is a letter. A Pool hands out entries of a precomputed list in
// order and never repeats one.
package uid

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
)

const (
	// Length is the length of an identifier.
	Length = 11

	letters  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	alphabet = letters + "0123456789"
)

var uidRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]{10}$`)

// IsValid reports whether s is a well-formed identifier.
func IsValid(s string) bool {
	return uidRegex.MatchString(s)
}

// New returns a random identifier.
func New() (string, error) {
	b := make([]byte, Length)
	for i := range b {
		set := alphabet
		if i == 0 {
			set = letters
		}
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
		if err != nil {
			return "", fmt.Errorf("reading random source: %w", err)
		}
		b[i] = set[n.Int64()]
	}
	return string(b), nil
}

// Generate returns n distinct random identifiers, none of which appears
// in exclude.
func Generate(n int, exclude ...string) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", n)
	}

	seen := make(map[string]struct{}, n+len(exclude))
	for _, id := range exclude {
		seen[id] = struct{}{}
	}

	out := make([]string, 0, n)
	for len(out) < n {
		id, err := New()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
