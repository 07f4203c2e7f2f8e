package core

import (
	"math/big"
	"sort"

	"tvmabi/pkg/cell"
	"tvmabi/pkg/cell/dict"
)

// serializeTuple concatenates its elements' own leaf lists in order —
// "inline" in the sense that no extra reference indirection is introduced;
// the elements simply become more leaves for the same Bit/Ref Packer run.
func serializeTuple(v Value) ([]*cell.Cell, error) {
	var out []*cell.Cell
	for _, el := range v.Elements {
		leaves, err := Serialize(el)
		if err != nil {
			return nil, err
		}
		out = append(out, leaves...)
	}
	return out, nil
}

func deserializeTuple(cur *Cursor, p Parameter) (Value, error) {
	elements := make([]Value, len(p.Elements))
	for i, elemParam := range p.Elements {
		v, err := Deserialize(cur, elemParam)
		if err != nil {
			return Value{}, err
		}
		elements[i] = v
	}
	return ValueTuple(p, elements)
}

// valueToCell packs a single Value into its own self-contained root cell,
// used wherever the format calls for a value to be stored "by reference"
// (array/map elements).
func valueToCell(v Value) (*cell.Cell, error) {
	leaves, err := Serialize(v)
	if err != nil {
		return nil, err
	}
	return Pack(leaves)
}

// cellToValue reverses valueToCell, requiring the cell be consumed
// cleanly.
func cellToValue(c *cell.Cell, p Parameter) (Value, error) {
	cur := NewCursor(c)
	v, err := Deserialize(cur, p)
	if err != nil {
		return Value{}, err
	}
	if err := cur.AssertClean(); err != nil {
		return Value{}, err
	}
	return v, nil
}

const dictIndexBits = 32

func serializeArray(v Value, fixed bool) ([]*cell.Cell, error) {
	if fixed && len(v.Elements) != v.Param.Length {
		return nil, ErrValueOutOfRange
	}
	entries := make([]dict.Entry, len(v.Elements))
	for i, el := range v.Elements {
		c, err := valueToCell(el)
		if err != nil {
			return nil, err
		}
		entries[i] = dict.Entry{Key: big.NewInt(int64(i)), Value: c}
	}
	root, err := dict.Encode(entries, dictIndexBits)
	if err != nil {
		return nil, ErrSerializationError
	}
	b := cell.NewBuilder()
	if !fixed {
		if err := b.StoreUint(uint64(len(v.Elements)), 32); err != nil {
			return nil, ErrSerializationError
		}
	}
	if err := b.StoreRef(root); err != nil {
		return nil, ErrSerializationError
	}
	return packOne(b)
}

func deserializeArray(cur *Cursor, p Parameter, fixed bool) (Value, error) {
	count := p.Length
	if !fixed {
		n, err := cur.LoadUint(32)
		if err != nil {
			return Value{}, err
		}
		count = int(n)
	}
	root, err := cur.LoadRef()
	if err != nil {
		return Value{}, err
	}
	entries, err := dict.Decode(root, dictIndexBits)
	if err != nil {
		return Value{}, ErrDeserializationError
	}
	if len(entries) != count {
		return Value{}, ErrDeserializationError
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key.Cmp(entries[j].Key) < 0 })
	elements := make([]Value, count)
	for i, e := range entries {
		if e.Key.Int64() != int64(i) {
			return Value{}, ErrDeserializationError
		}
		v, err := cellToValue(e.Value, *p.Element)
		if err != nil {
			return Value{}, err
		}
		elements[i] = v
	}
	if fixed {
		return ValueFixedArray(p, elements)
	}
	return ValueArray(p, elements)
}

// serializeCell always stores the referenced cell by reference. The
// source's parent-empty splice optimization is not implemented; see
// DESIGN.md for the Open Question decision.
func serializeCell(v Value) ([]*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := b.StoreRef(v.Cell); err != nil {
		return nil, ErrSerializationError
	}
	return packOne(b)
}

func deserializeCell(cur *Cursor, p Parameter) (Value, error) {
	c, err := cur.LoadRef()
	if err != nil {
		return Value{}, err
	}
	return ValueCell(p, c)
}

// keyBitWidth reports the fixed bit width a Map key occupies, for the key
// kinds spec §4.2 permits: Int, Uint, Address, FixedBytes.
func keyBitWidth(p Parameter) (int, bool) {
	switch p.Kind {
	case KindUint, KindInt:
		return p.Width, true
	case KindAddress:
		return 267, true
	case KindFixedBytes:
		return p.Width * 8, true
	default:
		return 0, false
	}
}

// keyToBits packs a Map key Value into its raw bit pattern, used directly
// as the dictionary trie key (not boxed behind a reference — a dictionary
// key must be a fixed-width bit string, not a cell).
func keyToBits(v Value, width int) (*big.Int, error) {
	switch v.Param.Kind {
	case KindUint:
		return new(big.Int).Set(v.Int), nil
	case KindInt:
		if v.Int.Sign() >= 0 {
			return new(big.Int).Set(v.Int), nil
		}
		mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
		return new(big.Int).Add(v.Int, mod), nil
	case KindAddress:
		b := cell.NewBuilder()
		if err := b.StoreUint(0b10, 2); err != nil {
			return nil, ErrSerializationError
		}
		if err := b.StoreBit(false); err != nil {
			return nil, ErrSerializationError
		}
		if err := b.StoreInt(int64(v.Addr.Workchain), 8); err != nil {
			return nil, ErrSerializationError
		}
		if err := b.StoreBytes(v.Addr.AccountHash[:]); err != nil {
			return nil, ErrSerializationError
		}
		s := cell.NewSlice(b.Finalize())
		return s.LoadBigUint(width)
	case KindFixedBytes:
		return new(big.Int).SetBytes(v.Bytes), nil
	default:
		return nil, ErrTypeMismatch
	}
}

// bitsToKeyValue reconstructs a Map key Value from its raw dictionary bit
// pattern.
func bitsToKeyValue(key *big.Int, width int, p Parameter) (Value, error) {
	switch p.Kind {
	case KindUint:
		return ValueUint(p, key)
	case KindInt:
		v := new(big.Int).Set(key)
		mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
		half := new(big.Int).Rsh(mod, 1)
		if v.Cmp(half) >= 0 {
			v.Sub(v, mod)
		}
		return ValueInt(p, v)
	case KindAddress:
		b := cell.NewBuilder()
		if err := b.StoreBigUint(key, width); err != nil {
			return Value{}, ErrDeserializationError
		}
		cur := NewCursor(b.Finalize())
		return deserializeAddress(cur, p)
	case KindFixedBytes:
		raw := key.Bytes()
		if len(raw) < p.Width {
			padded := make([]byte, p.Width)
			copy(padded[p.Width-len(raw):], raw)
			raw = padded
		}
		return ValueFixedBytes(p, raw)
	default:
		return Value{}, ErrTypeMismatch
	}
}

func serializeMap(v Value) ([]*cell.Cell, error) {
	width, ok := keyBitWidth(*v.Param.Key)
	if !ok {
		return nil, ErrSerializationError
	}
	entries := make([]dict.Entry, len(v.Entries))
	for i, e := range v.Entries {
		key, err := keyToBits(e.Key, width)
		if err != nil {
			return nil, err
		}
		valCell, err := valueToCell(e.Val)
		if err != nil {
			return nil, err
		}
		entries[i] = dict.Entry{Key: key, Value: valCell}
	}
	root, err := dict.Encode(entries, width)
	if err != nil {
		return nil, ErrSerializationError
	}
	b := cell.NewBuilder()
	if err := b.StoreRef(root); err != nil {
		return nil, ErrSerializationError
	}
	return packOne(b)
}

func deserializeMap(cur *Cursor, p Parameter) (Value, error) {
	width, ok := keyBitWidth(*p.Key)
	if !ok {
		return Value{}, ErrDeserializationError
	}
	root, err := cur.LoadRef()
	if err != nil {
		return Value{}, err
	}
	rawEntries, err := dict.Decode(root, width)
	if err != nil {
		return Value{}, ErrDeserializationError
	}
	entries := make([]MapEntry, len(rawEntries))
	for i, e := range rawEntries {
		keyVal, err := bitsToKeyValue(e.Key, width, *p.Key)
		if err != nil {
			return Value{}, err
		}
		val, err := cellToValue(e.Value, *p.Val)
		if err != nil {
			return Value{}, err
		}
		entries[i] = MapEntry{Key: keyVal, Val: val}
	}
	return ValueMap(p, entries)
}
