package core

import (
	"fmt"
	"strings"
)

// ABIVersion is the published ABI version this codec implements, embedded
// in every canonical signature per §4.6.
const ABIVersion = 2

// Function is a callable contract method's schema: header fields (signing
// metadata), inputs, outputs, and the selector ids that dispatch to it.
type Function struct {
	Name     string
	Header   []Parameter
	Inputs   []Parameter
	Outputs  []Parameter
	InputID  uint32
	OutputID uint32
}

// CanonicalSignature returns name(inputs)(outputs)vN, the deterministic
// string two Functions must agree on to derive identical ids (§4.6).
func (f Function) CanonicalSignature() string {
	return canonicalSignature(f.Name, f.Inputs, f.Outputs)
}

func canonicalSignature(name string, inputs, outputs []Parameter) string {
	return fmt.Sprintf("%s(%s)(%s)v%d", name, joinSignatures(inputs), joinSignatures(outputs), ABIVersion)
}

func joinSignatures(params []Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.TypeSignature()
	}
	return strings.Join(parts, ",")
}

// ResolveIDs fills InputID/OutputID from the canonical signature when both
// are zero, per §3: "when IDs are not supplied, they are derived from the
// canonical signature." A Function that explicitly sets one of the ids
// (e.g. a fixed well-known selector) is left untouched.
func (f *Function) ResolveIDs(cache *FunctionIDCache) {
	if f.InputID != 0 || f.OutputID != 0 {
		return
	}
	id := cache.Derive(f.CanonicalSignature())
	f.InputID = id & 0x7FFFFFFF
	f.OutputID = id | 0x80000000
}
