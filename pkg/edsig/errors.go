package edsig

import "errors"

// ErrInvalidKeySize is returned when a caller supplies a private key of the
// wrong length to Sign.
var ErrInvalidKeySize = errors.New("edsig: invalid private key size")
