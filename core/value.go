package core

import (
	"math/big"

	"tvmabi/pkg/cell"
)

// Address is the ABI payload for an Address Parameter: a workchain id
// paired with a 256-bit account hash.
type Address struct {
	Workchain   int32
	AccountHash [32]byte
}

// MapEntry is one key/value pair carried by a Map Value.
type MapEntry struct {
	Key Value
	Val Value
}

// Value is a Parameter together with a concrete payload. Exactly one of
// the payload fields below is meaningful, selected by Param.Kind — a
// tagged union expressed as a flat struct rather than an interface
// hierarchy, per the "no vtable necessary" design note.
type Value struct {
	Param Parameter

	Int      *big.Int // Uint, Int, Gram
	Bool     bool
	Elements []Value // Tuple, Array, FixedArray
	Cell     *cell.Cell
	Entries  []MapEntry
	Addr     Address
	Bytes    []byte // Bytes, FixedBytes
	Time     uint64
	Expire   uint32
	PubKey   *[32]byte
}

// Signature returns the type signature of the Value's Parameter.
func (v Value) Signature() string { return v.Param.TypeSignature() }

// ValueUint constructs a Uint(n) Value, validating that n fits unsigned in
// the parameter's declared width.
func ValueUint(p Parameter, n *big.Int) (Value, error) {
	if p.Kind != KindUint {
		return Value{}, ErrTypeMismatch
	}
	if n.Sign() < 0 || n.BitLen() > p.Width {
		return Value{}, ErrValueOutOfRange
	}
	return Value{Param: p, Int: new(big.Int).Set(n)}, nil
}

// ValueInt constructs an Int(n) Value, validating that n fits signed in the
// parameter's declared width.
func ValueInt(p Parameter, n *big.Int) (Value, error) {
	if p.Kind != KindInt {
		return Value{}, ErrTypeMismatch
	}
	min := new(big.Int).Lsh(big.NewInt(-1), uint(p.Width-1))
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(p.Width-1)), big.NewInt(1))
	if n.Cmp(min) < 0 || n.Cmp(max) > 0 {
		return Value{}, ErrValueOutOfRange
	}
	return Value{Param: p, Int: new(big.Int).Set(n)}, nil
}

// ValueBool constructs a Bool Value.
func ValueBool(p Parameter, b bool) (Value, error) {
	if p.Kind != KindBool {
		return Value{}, ErrTypeMismatch
	}
	return Value{Param: p, Bool: b}, nil
}

// ValueTuple constructs a Tuple Value, validating each element's signature
// against the corresponding Tuple schema position.
func ValueTuple(p Parameter, elements []Value) (Value, error) {
	if p.Kind != KindTuple {
		return Value{}, ErrTypeMismatch
	}
	if len(elements) != len(p.Elements) {
		return Value{}, ErrValueOutOfRange
	}
	for i, e := range elements {
		if e.Signature() != p.Elements[i].TypeSignature() {
			return Value{}, ErrTypeMismatch
		}
	}
	return Value{Param: p, Elements: elements}, nil
}

// ValueArray constructs an Array Value; every element's signature must
// match the declared element type.
func ValueArray(p Parameter, elements []Value) (Value, error) {
	if p.Kind != KindArray {
		return Value{}, ErrTypeMismatch
	}
	for _, e := range elements {
		if e.Signature() != p.Element.TypeSignature() {
			return Value{}, ErrTypeMismatch
		}
	}
	return Value{Param: p, Elements: elements}, nil
}

// ValueFixedArray constructs a FixedArray Value; the element count must
// equal the declared length.
func ValueFixedArray(p Parameter, elements []Value) (Value, error) {
	if p.Kind != KindFixedArray {
		return Value{}, ErrTypeMismatch
	}
	if len(elements) != p.Length {
		return Value{}, ErrValueOutOfRange
	}
	for _, e := range elements {
		if e.Signature() != p.Element.TypeSignature() {
			return Value{}, ErrTypeMismatch
		}
	}
	return Value{Param: p, Elements: elements}, nil
}

// ValueCell constructs a Cell Value.
func ValueCell(p Parameter, c *cell.Cell) (Value, error) {
	if p.Kind != KindCell {
		return Value{}, ErrTypeMismatch
	}
	return Value{Param: p, Cell: c}, nil
}

// ValueMap constructs a Map Value; every entry's key/value signatures must
// match the declared key/value types.
func ValueMap(p Parameter, entries []MapEntry) (Value, error) {
	if p.Kind != KindMap {
		return Value{}, ErrTypeMismatch
	}
	for _, e := range entries {
		if e.Key.Signature() != p.Key.TypeSignature() || e.Val.Signature() != p.Val.TypeSignature() {
			return Value{}, ErrTypeMismatch
		}
	}
	return Value{Param: p, Entries: entries}, nil
}

// ValueAddress constructs an Address Value.
func ValueAddress(p Parameter, addr Address) (Value, error) {
	if p.Kind != KindAddress {
		return Value{}, ErrTypeMismatch
	}
	return Value{Param: p, Addr: addr}, nil
}

// ValueBytes constructs a Bytes Value.
func ValueBytes(p Parameter, data []byte) (Value, error) {
	if p.Kind != KindBytes {
		return Value{}, ErrTypeMismatch
	}
	return Value{Param: p, Bytes: data}, nil
}

// ValueFixedBytes constructs a FixedBytes(n) Value; data must be exactly n
// bytes.
func ValueFixedBytes(p Parameter, data []byte) (Value, error) {
	if p.Kind != KindFixedBytes {
		return Value{}, ErrTypeMismatch
	}
	if len(data) != p.Width {
		return Value{}, ErrValueOutOfRange
	}
	return Value{Param: p, Bytes: data}, nil
}

// ValueGram constructs a Gram Value; the amount must fit in an unsigned
// 128-bit integer.
func ValueGram(p Parameter, amount *big.Int) (Value, error) {
	if p.Kind != KindGram {
		return Value{}, ErrTypeMismatch
	}
	if amount.Sign() < 0 || amount.BitLen() > 128 {
		return Value{}, ErrValueOutOfRange
	}
	return Value{Param: p, Int: new(big.Int).Set(amount)}, nil
}

// ValueTime constructs a Time Value from a millisecond timestamp.
func ValueTime(p Parameter, ms uint64) (Value, error) {
	if p.Kind != KindTime {
		return Value{}, ErrTypeMismatch
	}
	return Value{Param: p, Time: ms}, nil
}

// ValueExpire constructs an Expire Value from a unix-seconds timestamp.
func ValueExpire(p Parameter, seconds uint32) (Value, error) {
	if p.Kind != KindExpire {
		return Value{}, ErrTypeMismatch
	}
	return Value{Param: p, Expire: seconds}, nil
}

// ValuePublicKey constructs a PublicKey Value. A nil key encodes as
// "absent".
func ValuePublicKey(p Parameter, key *[32]byte) (Value, error) {
	if p.Kind != KindPublicKey {
		return Value{}, ErrTypeMismatch
	}
	return Value{Param: p, PubKey: key}, nil
}

// DefaultValue returns the default Value for primitive parameter p, or
// false if p has no default (every compound kind, per spec §3). clk
// supplies "now" for Time, per the explicit clock-injection design note
// replacing the source's implicit wall-clock default.
func DefaultValue(p Parameter, clk Clock) (Value, bool) {
	switch p.Kind {
	case KindUint, KindGram:
		v, _ := ValueUint(p, big.NewInt(0))
		if p.Kind == KindGram {
			v, _ = ValueGram(p, big.NewInt(0))
		}
		return v, true
	case KindInt:
		v, _ := ValueInt(p, big.NewInt(0))
		return v, true
	case KindBool:
		v, _ := ValueBool(p, false)
		return v, true
	case KindAddress:
		v, _ := ValueAddress(p, Address{})
		return v, true
	case KindBytes:
		v, _ := ValueBytes(p, nil)
		return v, true
	case KindFixedBytes:
		v, _ := ValueFixedBytes(p, make([]byte, p.Width))
		return v, true
	case KindTime:
		v, _ := ValueTime(p, uint64(clk.Now().UnixMilli()))
		return v, true
	case KindExpire:
		v, _ := ValueExpire(p, uint32(clk.Now().Unix()))
		return v, true
	case KindPublicKey:
		v, _ := ValuePublicKey(p, nil)
		return v, true
	default:
		return Value{}, false
	}
}
