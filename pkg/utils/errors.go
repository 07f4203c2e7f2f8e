// Package utils provides shared utility helpers used across the ABI codec
// and its surrounding CLI/server tooling.
package utils

import "fmt"

// Wrap prefixes err with message using %w so callers can still unwrap back
// to the sentinel errors in core/errors.go and pkg/edsig/errors.go. A nil
// err passes through unchanged, so call sites can wrap unconditionally.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
