// Package orderref mints and parses payment order references of the form
// "<intentID>_<nonce>". The nonce only has to make retries of the same intent distinct.
package orderref

import (
	"errors"
	"strconv"
	"strings"
)

const separator = "_"

var ErrMalformed = errors.New("malformed order reference")

// New formats the reference sent to the gateway.
func New(intentID, nonce int64) string {
	return strconv.FormatInt(intentID, 10) + separator + strconv.FormatInt(nonce, 10)
}

// Parse extracts the intent identifier. Both segments must be the canonical decimal form
// New produces, so each intent has exactly one reference per nonce.
func Parse(ref string) (int64, error) {
	head, tail, ok := strings.Cut(ref, separator)
	if !ok {
		return 0, ErrMalformed
	}

	id, ok := canonical(head)
	if !ok || id <= 0 {
		return 0, ErrMalformed
	}

	if _, ok := canonical(tail); !ok {
		return 0, ErrMalformed
	}

	return id, nil
}

// canonical parses a non-negative integer written without sign or leading zeros.
func canonical(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 || strconv.FormatInt(n, 10) != s {
		return 0, false
	}

	return n, true
}
