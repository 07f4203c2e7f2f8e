// Package cell is a minimal Cell Library adapter: the bit/reference cell,
// builder and slice primitives that spec.md §6.1 names as an external
// collaborator. It implements just enough of a TVM-style cell (up to 1023
// bits, up to 4 references, content-addressed by hash) for the ABI codec
// to round-trip values through; it does not implement bag-of-cells wire
// serialization, which is explicitly out of scope.
package cell

import (
	"crypto/sha256"
	"encoding/binary"
)

// MaxBits is the maximum number of bit payload a single cell may hold.
const MaxBits = 1023

// MaxRefs is the maximum number of outgoing references a single cell may
// hold.
const MaxRefs = 4

// Cell is an immutable node holding up to MaxBits bits of payload and up
// to MaxRefs references to other cells.
type Cell struct {
	data   []byte // packed bits, MSB-first within each byte
	bitLen int
	refs   []*Cell
}

// BitLen returns the number of valid bits stored in the cell.
func (c *Cell) BitLen() int { return c.bitLen }

// RefsLen returns the number of outgoing references.
func (c *Cell) RefsLen() int { return len(c.refs) }

// Refs returns the cell's outgoing references in order. The returned
// slice must not be mutated.
func (c *Cell) Refs() []*Cell { return c.refs }

// Bits returns the packed bit payload. Bits beyond BitLen() in the final
// byte are zero and carry no meaning.
func (c *Cell) Bits() []byte { return c.data }

// Hash computes the cell's representation hash: a SHA-256 digest over the
// bit length, bit payload, and the hashes of all child cells, computed
// depth-first. This is a simplified stand-in for the real BoC Merkle hash
// (full bag-of-cells serialization is out of scope per spec.md §1), but it
// satisfies the same contract the codec needs: two structurally identical
// cell trees hash identically, and it is this hash that gets signed.
func (c *Cell) Hash() [32]byte {
	h := sha256.New()
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(c.bitLen))
	h.Write(lenBuf[:])
	h.Write(c.data)
	h.Write([]byte{byte(len(c.refs))})
	for _, r := range c.refs {
		childHash := r.Hash()
		h.Write(childHash[:])
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// Equal reports whether two cells are structurally identical.
func (c *Cell) Equal(other *Cell) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Hash() == other.Hash()
}
