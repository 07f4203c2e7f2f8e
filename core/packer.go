package core

import "tvmabi/pkg/cell"

// Pack implements the Bit/Ref Packer (spec §4.1): it chains an ordered
// sequence of leaf cells — each already holding its own bit payload and
// outgoing references — into a single root cell, spilling into
// continuation cells whenever a fold would overflow the 1023-bit/4-ref
// per-cell budget.
//
// Packing never fails for in-range leaves; a single leaf whose own
// encoding already overflows one cell is the per-type codec's
// responsibility (ErrSerializationError), not the packer's.
func Pack(leaves []*cell.Cell) (*cell.Cell, error) {
	if len(leaves) == 0 {
		return cell.NewBuilder().Finalize(), nil
	}
	acc := leaves[len(leaves)-1]
	for i := len(leaves) - 2; i >= 0; i-- {
		leaf := leaves[i]
		var err error
		if leaf.BitLen()+acc.BitLen() <= cell.MaxBits && leaf.RefsLen()+acc.RefsLen() <= cell.MaxRefs {
			acc, err = foldInto(leaf, acc)
		} else {
			acc, err = attachAsRef(leaf, acc)
		}
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// foldInto appends acc's bits then acc's refs onto leaf, returning the
// combined cell.
func foldInto(leaf, acc *cell.Cell) (*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := appendCellBits(b, leaf); err != nil {
		return nil, err
	}
	for _, r := range leaf.Refs() {
		if err := b.StoreRef(r); err != nil {
			return nil, err
		}
	}
	if err := appendCellBits(b, acc); err != nil {
		return nil, err
	}
	for _, r := range acc.Refs() {
		if err := b.StoreRef(r); err != nil {
			return nil, err
		}
	}
	return b.Finalize(), nil
}

// attachAsRef attaches acc as leaf's last outgoing reference.
func attachAsRef(leaf, acc *cell.Cell) (*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := appendCellBits(b, leaf); err != nil {
		return nil, err
	}
	for _, r := range leaf.Refs() {
		if err := b.StoreRef(r); err != nil {
			return nil, err
		}
	}
	if err := b.StoreRef(acc); err != nil {
		return nil, err
	}
	return b.Finalize(), nil
}

func appendCellBits(b *cell.Builder, c *cell.Cell) error {
	s := cell.NewSlice(c)
	bits, err := s.LoadBits(c.BitLen())
	if err != nil {
		return err
	}
	return b.StoreBits(bits)
}
