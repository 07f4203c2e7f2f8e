package core

import (
	"fmt"
	"strings"
)

// ParamKind tags which variant a Parameter (and the Value built from it)
// holds. Dispatch across kinds is a switch, not a vtable — see DESIGN.md's
// note on the polymorphic parameter hierarchy.
type ParamKind int

const (
	KindUint ParamKind = iota
	KindInt
	KindBool
	KindTuple
	KindArray
	KindFixedArray
	KindCell
	KindMap
	KindAddress
	KindBytes
	KindFixedBytes
	KindGram
	KindTime
	KindExpire
	KindPublicKey
)

func (k ParamKind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindTuple:
		return "tuple"
	case KindArray:
		return "array"
	case KindFixedArray:
		return "fixedarray"
	case KindCell:
		return "cell"
	case KindMap:
		return "map"
	case KindAddress:
		return "address"
	case KindBytes:
		return "bytes"
	case KindFixedBytes:
		return "fixedbytes"
	case KindGram:
		return "gram"
	case KindTime:
		return "time"
	case KindExpire:
		return "expire"
	case KindPublicKey:
		return "pubkey"
	default:
		return "unknown"
	}
}

// Parameter is a schema node: a named, typed slot. Kind-specific fields are
// populated only for the kinds that use them; see the table in spec §3.
type Parameter struct {
	Name     string
	Kind     ParamKind
	Width    int // bit width, for Uint/Int/FixedBytes
	Length   int // element count, for FixedArray
	Element  *Parameter
	Elements []Parameter // for Tuple
	Key      *Parameter  // for Map
	Val      *Parameter  // for Map
}

// NewUint returns an unsigned integer Parameter of the given bit width.
func NewUint(name string, bits int) Parameter {
	return Parameter{Name: name, Kind: KindUint, Width: bits}
}

// NewInt returns a signed integer Parameter of the given bit width.
func NewInt(name string, bits int) Parameter {
	return Parameter{Name: name, Kind: KindInt, Width: bits}
}

// NewBool returns a 1-bit boolean Parameter.
func NewBool(name string) Parameter {
	return Parameter{Name: name, Kind: KindBool}
}

// NewTuple returns a Parameter grouping an ordered list of elements.
func NewTuple(name string, elements []Parameter) Parameter {
	return Parameter{Name: name, Kind: KindTuple, Elements: elements}
}

// NewArray returns a variable-length array Parameter of the given element
// type.
func NewArray(name string, element Parameter) Parameter {
	return Parameter{Name: name, Kind: KindArray, Element: &element}
}

// NewFixedArray returns a fixed-length array Parameter.
func NewFixedArray(name string, element Parameter, n int) Parameter {
	return Parameter{Name: name, Kind: KindFixedArray, Element: &element, Length: n}
}

// NewCell returns a Parameter holding a single cell reference.
func NewCell(name string) Parameter {
	return Parameter{Name: name, Kind: KindCell}
}

// NewMap returns a dictionary Parameter keyed by key, valued by val.
func NewMap(name string, key, val Parameter) Parameter {
	return Parameter{Name: name, Kind: KindMap, Key: &key, Val: &val}
}

// NewAddress returns a standard workchain/hash address Parameter.
func NewAddress(name string) Parameter {
	return Parameter{Name: name, Kind: KindAddress}
}

// NewBytes returns a variable-length chunked byte-vector Parameter.
func NewBytes(name string) Parameter {
	return Parameter{Name: name, Kind: KindBytes}
}

// NewFixedBytes returns a fixed-length chunked byte-vector Parameter.
func NewFixedBytes(name string, n int) Parameter {
	return Parameter{Name: name, Kind: KindFixedBytes, Width: n}
}

// NewGram returns a variable-length currency-amount Parameter.
func NewGram(name string) Parameter {
	return Parameter{Name: name, Kind: KindGram}
}

// NewTime returns a 64-bit millisecond timestamp Parameter.
func NewTime(name string) Parameter {
	return Parameter{Name: name, Kind: KindTime}
}

// NewExpire returns a 32-bit expiration Parameter.
func NewExpire(name string) Parameter {
	return Parameter{Name: name, Kind: KindExpire}
}

// NewPublicKey returns an optional 256-bit public-key Parameter.
func NewPublicKey(name string) Parameter {
	return Parameter{Name: name, Kind: KindPublicKey}
}

// TypeSignature returns the canonical textual form of p's type. Two
// Parameters are type-equivalent iff their signatures are byte-equal; the
// signature never depends on Name.
func (p Parameter) TypeSignature() string {
	switch p.Kind {
	case KindUint:
		return fmt.Sprintf("uint%d", p.Width)
	case KindInt:
		return fmt.Sprintf("int%d", p.Width)
	case KindBool:
		return "bool"
	case KindTuple:
		parts := make([]string, len(p.Elements))
		for i, e := range p.Elements {
			parts[i] = e.TypeSignature()
		}
		return "(" + strings.Join(parts, ",") + ")"
	case KindArray:
		return p.Element.TypeSignature() + "[]"
	case KindFixedArray:
		return fmt.Sprintf("%s[%d]", p.Element.TypeSignature(), p.Length)
	case KindCell:
		return "cell"
	case KindMap:
		return fmt.Sprintf("map(%s,%s)", p.Key.TypeSignature(), p.Val.TypeSignature())
	case KindAddress:
		return "address"
	case KindBytes:
		return "bytes"
	case KindFixedBytes:
		return fmt.Sprintf("fixedbytes%d", p.Width)
	case KindGram:
		return "gram"
	case KindTime:
		return "time"
	case KindExpire:
		return "expire"
	case KindPublicKey:
		return "pubkey"
	default:
		return "invalid"
	}
}

// BitLen returns the fixed bit width and true for Uint/Int (their declared
// width) and Bool (1 bit), and (0, false) for every other kind.
func (p Parameter) BitLen() (int, bool) {
	switch p.Kind {
	case KindUint, KindInt:
		return p.Width, true
	case KindBool:
		return 1, true
	default:
		return 0, false
	}
}
