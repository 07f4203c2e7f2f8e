package core

import (
	"math/big"

	"tvmabi/pkg/cell"
)

// Runtime is the VM Runtime collaborator spec §6.3 names as consumed, not
// implemented, by this package. internal/vm provides a concrete,
// wasmer-backed adapter; any other implementation is interchangeable
// without touching the codec.
type Runtime interface {
	Instantiate(code, data []byte, c7 []Value) (Instance, error)
}

// Instance is one instantiated, ready-to-run contract within a Runtime.
type Instance interface {
	PushStack(items []StackItem)
	Run(selector uint32) (exitCode int, out []StackItem, err error)
}

// StackItemKind tags a VM stack slot's representation.
type StackItemKind int

const (
	StackInt StackItemKind = iota
	StackCell
	StackSlice
	StackTuple
)

// StackItem is one VM stack slot, per the conversion rules of §4.7:
// integers push as VM integers, cells/slices push as such, tuples unfold
// to nested stacks.
type StackItem struct {
	Kind  StackItemKind
	Int   *big.Int
	Cell  *cell.Cell
	Tuple []StackItem
}

// ValueToStackItem converts a Value into the VM stack representation of
// its kind, for pushing as a get-method argument.
func ValueToStackItem(v Value) (StackItem, error) {
	switch v.Param.Kind {
	case KindUint, KindInt, KindGram:
		return StackItem{Kind: StackInt, Int: new(big.Int).Set(v.Int)}, nil
	case KindBool:
		n := int64(0)
		if v.Bool {
			n = 1
		}
		return StackItem{Kind: StackInt, Int: big.NewInt(n)}, nil
	case KindTime:
		return StackItem{Kind: StackInt, Int: new(big.Int).SetUint64(v.Time)}, nil
	case KindExpire:
		return StackItem{Kind: StackInt, Int: big.NewInt(int64(v.Expire))}, nil
	case KindCell:
		return StackItem{Kind: StackCell, Cell: v.Cell}, nil
	case KindAddress, KindBytes, KindFixedBytes, KindMap:
		c, err := valueToCell(v)
		if err != nil {
			return StackItem{}, err
		}
		return StackItem{Kind: StackSlice, Cell: c}, nil
	case KindPublicKey:
		if v.PubKey == nil {
			return StackItem{Kind: StackInt, Int: big.NewInt(0)}, nil
		}
		return StackItem{Kind: StackInt, Int: new(big.Int).SetBytes(v.PubKey[:])}, nil
	case KindTuple, KindArray, KindFixedArray:
		items := make([]StackItem, len(v.Elements))
		for i, e := range v.Elements {
			item, err := ValueToStackItem(e)
			if err != nil {
				return StackItem{}, err
			}
			items[i] = item
		}
		return StackItem{Kind: StackTuple, Tuple: items}, nil
	default:
		return StackItem{}, ErrSerializationError
	}
}

// StackItemToValue converts a VM output stack item back into a Value of
// the expected Parameter's kind, failing with ErrOutputTypeMismatch on any
// disagreement.
func StackItemToValue(item StackItem, p Parameter) (Value, error) {
	switch p.Kind {
	case KindUint, KindInt, KindGram:
		if item.Kind != StackInt {
			return Value{}, ErrOutputTypeMismatch
		}
		switch p.Kind {
		case KindUint:
			return mustValue(ValueUint(p, item.Int))
		case KindInt:
			return mustValue(ValueInt(p, item.Int))
		default:
			return mustValue(ValueGram(p, item.Int))
		}
	case KindBool:
		if item.Kind != StackInt {
			return Value{}, ErrOutputTypeMismatch
		}
		return mustValue(ValueBool(p, item.Int.Sign() != 0))
	case KindTime:
		if item.Kind != StackInt {
			return Value{}, ErrOutputTypeMismatch
		}
		return mustValue(ValueTime(p, item.Int.Uint64()))
	case KindExpire:
		if item.Kind != StackInt {
			return Value{}, ErrOutputTypeMismatch
		}
		return mustValue(ValueExpire(p, uint32(item.Int.Uint64())))
	case KindPublicKey:
		if item.Kind != StackInt {
			return Value{}, ErrOutputTypeMismatch
		}
		if item.Int.Sign() == 0 {
			return mustValue(ValuePublicKey(p, nil))
		}
		var key [32]byte
		raw := item.Int.Bytes()
		copy(key[32-len(raw):], raw)
		return mustValue(ValuePublicKey(p, &key))
	case KindCell:
		if item.Kind != StackCell {
			return Value{}, ErrOutputTypeMismatch
		}
		return mustValue(ValueCell(p, item.Cell))
	case KindAddress, KindBytes, KindFixedBytes, KindMap:
		if item.Kind != StackSlice {
			return Value{}, ErrOutputTypeMismatch
		}
		v, err := cellToValue(item.Cell, p)
		if err != nil {
			return Value{}, ErrOutputTypeMismatch
		}
		return v, nil
	case KindTuple, KindArray, KindFixedArray:
		if item.Kind != StackTuple {
			return Value{}, ErrOutputTypeMismatch
		}
		elemParam := p.Element
		count := len(item.Tuple)
		elements := make([]Value, count)
		for i, it := range item.Tuple {
			var ep Parameter
			if p.Kind == KindTuple {
				if i >= len(p.Elements) {
					return Value{}, ErrOutputTypeMismatch
				}
				ep = p.Elements[i]
			} else {
				ep = *elemParam
			}
			v, err := StackItemToValue(it, ep)
			if err != nil {
				return Value{}, err
			}
			elements[i] = v
		}
		switch p.Kind {
		case KindTuple:
			return mustValue(ValueTuple(p, elements))
		case KindFixedArray:
			return mustValue(ValueFixedArray(p, elements))
		default:
			return mustValue(ValueArray(p, elements))
		}
	default:
		return Value{}, ErrOutputTypeMismatch
	}
}

func mustValue(v Value, err error) (Value, error) {
	if err != nil {
		return Value{}, ErrOutputTypeMismatch
	}
	return v, nil
}

// RunGetMethod implements the Get-Method Runner (§4.7): it materializes a
// VM instance from an active account's code/data, pushes the converted
// inputs, runs with the function's input_id as selector, and converts the
// resulting top-of-stack items into Values per fn.Outputs.
func RunGetMethod(fn Function, account AccountStateInfo, inputs []Value, rt Runtime) ([]Value, error) {
	if account.State != StateActive {
		return nil, ErrAccountInactive
	}
	codeBytes := cellPayloadBytes(account.Details.Code)
	dataBytes := cellPayloadBytes(account.Details.Data)

	instance, err := rt.Instantiate(codeBytes, dataBytes, account.Details.C7)
	if err != nil {
		return nil, err
	}

	items := make([]StackItem, len(inputs))
	for i, v := range inputs {
		item, err := ValueToStackItem(v)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	instance.PushStack(items)

	exitCode, out, err := instance.Run(fn.InputID)
	if err != nil {
		return nil, err
	}
	if exitCode != 0 {
		return nil, &VmError{ExitCode: exitCode}
	}
	if len(out) < len(fn.Outputs) {
		return nil, ErrOutputTypeMismatch
	}
	top := out[len(out)-len(fn.Outputs):]
	outputs := make([]Value, len(fn.Outputs))
	for i, p := range fn.Outputs {
		v, err := StackItemToValue(top[i], p)
		if err != nil {
			return nil, err
		}
		outputs[i] = v
	}
	return outputs, nil
}

func cellPayloadBytes(c *cell.Cell) []byte {
	if c == nil {
		return nil
	}
	return c.Bits()
}
