// Package edsig is the Crypto Library adapter spec.md §6.2 names: Ed25519
// key generation, signing and verification used to authenticate function
// calls. It wraps golang.org/x/crypto/ed25519 rather than introducing any
// signing scheme of its own, matching how the teacher's core/security.go
// wraps its own Ed25519/BLS dependencies behind a single Sign/Verify pair.
package edsig

import (
	"crypto/rand"

	"golang.org/x/crypto/ed25519"

	"tvmabi/pkg/utils"
)

// PublicKeySize and SignatureSize mirror the underlying ed25519 package's
// fixed sizes, re-exported so callers need not import it directly.
const (
	PublicKeySize  = ed25519.PublicKeySize
	PrivateKeySize = ed25519.PrivateKeySize
	SignatureSize  = ed25519.SignatureSize
)

// PublicKey and PrivateKey alias the underlying ed25519 types.
type (
	PublicKey  = ed25519.PublicKey
	PrivateKey = ed25519.PrivateKey
)

// GenerateKey produces a fresh Ed25519 key pair using crypto/rand.
func GenerateKey() (PublicKey, PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, utils.Wrap(err, "generate ed25519 key")
	}
	return pub, priv, nil
}

// Sign returns the Ed25519 signature of msg under priv. priv must be
// PrivateKeySize bytes.
func Sign(priv PrivateKey, msg []byte) ([]byte, error) {
	if len(priv) != PrivateKeySize {
		return nil, utils.Wrap(ErrInvalidKeySize, "sign")
	}
	return ed25519.Sign(priv, msg), nil
}

// Verify reports whether sig is a valid Ed25519 signature of msg under pub.
func Verify(pub PublicKey, msg, sig []byte) bool {
	if len(pub) != PublicKeySize {
		return false
	}
	return ed25519.Verify(pub, msg, sig)
}
