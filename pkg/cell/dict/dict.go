// Package dict implements the dictionary primitive spec.md §6.1 names as
// part of the Cell Library: a map from fixed-width keys to cell-valued
// payloads, used by the Array/FixedArray/Map per-type codecs. Real TON
// dictionaries are a hashmap-augmented binary (patricia) tree; this is a
// simplified but structurally equivalent compressed binary trie — label
// compression keeps a dense 10,000-entry array (spec.md §8 boundary test)
// from needing a node per unused key, without the augmentation (shortest-
// common-prefix bookkeeping for `get-next`/`get-prev`) that the real
// format carries and this codec never queries.
package dict

import (
	"math/big"

	"tvmabi/pkg/cell"
)

// labelLenBits is the width of the field that records how many label bits
// follow at each trie node. 10 bits covers the full 1023-bit cell budget.
const labelLenBits = 10

// Entry is one key/value pair of a dictionary.
type Entry struct {
	Key   *big.Int
	Value *cell.Cell
}

// Encode builds the dictionary trie for entries, each key being exactly
// keyBits wide, and returns its root cell. An empty entries list produces
// a valid "empty dictionary" cell.
func Encode(entries []Entry, keyBits int) (*cell.Cell, error) {
	b := cell.NewBuilder()
	if len(entries) == 0 {
		if err := b.StoreUint(0, 1); err != nil {
			return nil, err
		}
		return b.Finalize(), nil
	}
	if err := b.StoreUint(1, 1); err != nil {
		return nil, err
	}
	node, err := buildNode(entries, keyBits, keyBits)
	if err != nil {
		return nil, err
	}
	if err := b.StoreRef(node); err != nil {
		return nil, err
	}
	return b.Finalize(), nil
}

// Decode walks the dictionary trie rooted at root (keys keyBits wide) and
// returns every entry in ascending key order.
func Decode(root *cell.Cell, keyBits int) ([]Entry, error) {
	s := cell.NewSlice(root)
	nonEmpty, err := s.LoadUint(1)
	if err != nil {
		return nil, err
	}
	if nonEmpty == 0 {
		return nil, nil
	}
	nodeRef, err := s.LoadRef()
	if err != nil {
		return nil, err
	}
	var out []Entry
	if err := walkNode(nodeRef, keyBits, new(big.Int), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// bit returns the bit at logical position pos (0 = MSB) of a width-wide
// big-endian key.
func bit(key *big.Int, width, pos int) byte {
	return byte(key.Bit(width - 1 - pos))
}

// commonPrefixLen returns the length of the longest bit prefix shared by
// every key in entries, starting at bit offset `from` of a key space
// `width` bits wide, capped at `remaining`.
func commonPrefixLen(entries []Entry, width, from, remaining int) int {
	n := 0
	for n < remaining {
		b := bit(entries[0].Key, width, from+n)
		for _, e := range entries[1:] {
			if bit(e.Key, width, from+n) != b {
				return n
			}
		}
		n++
	}
	return n
}

// buildNode encodes the subtree for entries, whose keys (width bits wide)
// still disagree in their trailing `remaining` bits; `from` (= width -
// remaining) is the absolute bit offset of that trailing window.
func buildNode(entries []Entry, width, remaining int) (*cell.Cell, error) {
	b := cell.NewBuilder()
	from := width - remaining

	if len(entries) == 1 {
		if err := b.StoreUint(1, 1); err != nil { // leaf
			return nil, err
		}
		if err := b.StoreUint(uint64(remaining), labelLenBits); err != nil {
			return nil, err
		}
		for i := 0; i < remaining; i++ {
			if err := b.StoreBit(bit(entries[0].Key, width, from+i) != 0); err != nil {
				return nil, err
			}
		}
		if err := b.StoreRef(entries[0].Value); err != nil {
			return nil, err
		}
		return b.Finalize(), nil
	}

	common := commonPrefixLen(entries, width, from, remaining)
	if err := b.StoreUint(0, 1); err != nil { // internal
		return nil, err
	}
	if err := b.StoreUint(uint64(common), labelLenBits); err != nil {
		return nil, err
	}
	for i := 0; i < common; i++ {
		if err := b.StoreBit(bit(entries[0].Key, width, from+i) != 0); err != nil {
			return nil, err
		}
	}

	branchBitPos := from + common
	var left, right []Entry
	for _, e := range entries {
		if bit(e.Key, width, branchBitPos) == 0 {
			left = append(left, e)
		} else {
			right = append(right, e)
		}
	}
	childRemaining := remaining - common - 1
	leftCell, err := buildNode(left, width, childRemaining)
	if err != nil {
		return nil, err
	}
	rightCell, err := buildNode(right, width, childRemaining)
	if err != nil {
		return nil, err
	}
	if err := b.StoreRef(leftCell); err != nil {
		return nil, err
	}
	if err := b.StoreRef(rightCell); err != nil {
		return nil, err
	}
	return b.Finalize(), nil
}

func walkNode(node *cell.Cell, width int, prefix *big.Int, out *[]Entry) error {
	s := cell.NewSlice(node)
	isLeaf, err := s.LoadUint(1)
	if err != nil {
		return err
	}
	labelLen, err := s.LoadUint(labelLenBits)
	if err != nil {
		return err
	}
	label, err := s.LoadBits(int(labelLen))
	if err != nil {
		return err
	}
	key := new(big.Int).Set(prefix)
	for _, bitVal := range label {
		key.Lsh(key, 1)
		if bitVal {
			key.SetBit(key, 0, 1)
		}
	}

	if isLeaf == 1 {
		valueRef, err := s.LoadRef()
		if err != nil {
			return err
		}
		*out = append(*out, Entry{Key: key, Value: valueRef})
		return nil
	}

	leftRef, err := s.LoadRef()
	if err != nil {
		return err
	}
	rightRef, err := s.LoadRef()
	if err != nil {
		return err
	}
	leftKey := new(big.Int).Lsh(key, 1)
	rightKey := new(big.Int).Lsh(new(big.Int).Set(key), 1)
	rightKey.SetBit(rightKey, 0, 1)
	if err := walkNode(leftRef, width, leftKey, out); err != nil {
		return err
	}
	return walkNode(rightRef, width, rightKey, out)
}
