package core

import (
	"math/big"

	"tvmabi/pkg/cell"
)

// Cursor reads a sequence of parameter encodings chained across cells by
// the Bit/Ref Packer (§4.1). The packer never splits a single parameter's
// own bit run across cells, but it may place the continuation of the
// overall chain behind the final reference of the current cell; Cursor
// follows that reference transparently so per-type deserializers can read
// as if the whole chain were one contiguous slice.
type Cursor struct {
	slice *cell.Slice
}

// NewCursor returns a Cursor positioned at the start of root.
func NewCursor(root *cell.Cell) *Cursor {
	return &Cursor{slice: cell.NewSlice(root)}
}

// ensureBits hops into the chain's continuation reference (always the last
// remaining reference of the current cell, by construction of Pack) until
// at least n bits are available or the chain is exhausted.
func (c *Cursor) ensureBits(n int) error {
	for c.slice.RemainingBits() < n {
		if c.slice.RemainingRefs() == 0 {
			return ErrDeserializationError
		}
		next, err := c.slice.LoadRef()
		if err != nil {
			return ErrDeserializationError
		}
		c.slice = cell.NewSlice(next)
	}
	return nil
}

// LoadUint reads bits (0..64) as an unsigned integer, following the chain
// as needed.
func (c *Cursor) LoadUint(bits int) (uint64, error) {
	if err := c.ensureBits(bits); err != nil {
		return 0, err
	}
	v, err := c.slice.LoadUint(bits)
	if err != nil {
		return 0, ErrDeserializationError
	}
	return v, nil
}

// LoadInt reads bits (1..64) as a two's-complement signed integer.
func (c *Cursor) LoadInt(bits int) (int64, error) {
	if err := c.ensureBits(bits); err != nil {
		return 0, err
	}
	v, err := c.slice.LoadInt(bits)
	if err != nil {
		return 0, ErrDeserializationError
	}
	return v, nil
}

// LoadBigUint reads bits (0..1023) as an unsigned big.Int.
func (c *Cursor) LoadBigUint(bits int) (*big.Int, error) {
	if err := c.ensureBits(bits); err != nil {
		return nil, err
	}
	v, err := c.slice.LoadBigUint(bits)
	if err != nil {
		return nil, ErrDeserializationError
	}
	return v, nil
}

// LoadBigInt reads bits (1..1023) as a two's-complement signed big.Int.
func (c *Cursor) LoadBigInt(bits int) (*big.Int, error) {
	if err := c.ensureBits(bits); err != nil {
		return nil, err
	}
	v, err := c.slice.LoadBigInt(bits)
	if err != nil {
		return nil, ErrDeserializationError
	}
	return v, nil
}

// LoadBits reads n bits following the chain as needed.
func (c *Cursor) LoadBits(n int) ([]bool, error) {
	if err := c.ensureBits(n); err != nil {
		return nil, err
	}
	v, err := c.slice.LoadBits(n)
	if err != nil {
		return nil, ErrDeserializationError
	}
	return v, nil
}

// LoadBytes reads n bytes following the chain as needed.
func (c *Cursor) LoadBytes(n int) ([]byte, error) {
	if err := c.ensureBits(n * 8); err != nil {
		return nil, err
	}
	v, err := c.slice.LoadBytes(n)
	if err != nil {
		return nil, ErrDeserializationError
	}
	return v, nil
}

// LoadRef pops the next data reference belonging to the parameter
// currently being decoded. It does not itself hop the chain: by
// construction a parameter's own references are always available on the
// cell that holds its leading bits.
func (c *Cursor) LoadRef() (*cell.Cell, error) {
	r, err := c.slice.LoadRef()
	if err != nil {
		return nil, ErrDeserializationError
	}
	return r, nil
}

// AssertClean reports ErrDeserializationError unless the entire chain
// (current cell and, transitively, nothing left to hop to) has been
// consumed. Callers invoke this after the last parameter of a sequence
// when clean consumption is expected (the `is_last` contract of §4.2).
func (c *Cursor) AssertClean() error {
	if c.slice.RemainingBits() != 0 || c.slice.RemainingRefs() != 0 {
		return ErrDeserializationError
	}
	return nil
}
