package core

import (
	"math/big"

	"tvmabi/pkg/cell"
	"tvmabi/pkg/edsig"
)

// signatureReserveBits is the fixed width of the signature placeholder
// reserved at the head of an external message's header: 512 bits (a
// 64-byte Ed25519 signature), written after the separate 1-bit presence
// flag.
const signatureReserveBits = 512

// FunctionCall is a one-shot invocation request: constructed by the
// caller, consumed by Encode, then discarded (spec §3).
type FunctionCall struct {
	Header      map[string]Value
	Inputs      []Value
	Internal    bool
	PrivateKey  edsig.PrivateKey
	ReserveSign bool
	BodyAsRef   bool
}

// Encode assembles header cells (unless internal), the input_id-prefixed
// body, packs them into a root cell, and signs it if a private key is
// present (§4.3).
func Encode(fn Function, call FunctionCall, clk Clock) (*cell.Cell, error) {
	reserve := call.PrivateKey != nil || call.ReserveSign
	root, err := buildCallCell(fn, call, clk, reserve)
	if err != nil {
		return nil, err
	}
	if call.PrivateKey != nil && !call.Internal {
		hash := root.Hash()
		sig, err := edsig.Sign(call.PrivateKey, hash[:])
		if err != nil {
			return nil, ErrSignatureError
		}
		root, err = FillSignature(sig, root)
		if err != nil {
			return nil, err
		}
	}
	if call.BodyAsRef {
		b := cell.NewBuilder()
		if err := b.StoreRef(root); err != nil {
			return nil, ErrSerializationError
		}
		root = b.Finalize()
	}
	return root, nil
}

// CreateUnsignedCall builds a call's body with a zeroed signature slot and
// returns it alongside the representation hash the caller must sign
// externally (§4.5). The caller later uses FillSignature to splice in the
// produced signature.
func CreateUnsignedCall(fn Function, call FunctionCall, clk Clock) (*cell.Cell, [32]byte, error) {
	root, err := buildCallCell(fn, call, clk, true)
	if err != nil {
		return nil, [32]byte{}, err
	}
	return root, root.Hash(), nil
}

// FillSignature produces a new cell whose leading bits encode either `(0)`
// (sig == nil) or `(1, 512-bit sig)`, followed verbatim by the remainder
// of root's content (everything after its reserved signature slot) and
// all of root's references. It never mutates root.
func FillSignature(sig []byte, root *cell.Cell) (*cell.Cell, error) {
	s := cell.NewSlice(root)
	present, err := s.LoadBit()
	if err != nil {
		return nil, ErrDeserializationError
	}
	if !present {
		return nil, ErrSerializationError
	}
	if _, err := s.LoadBigUint(signatureReserveBits); err != nil {
		return nil, ErrDeserializationError
	}
	rest, err := s.LoadBits(s.RemainingBits())
	if err != nil {
		return nil, ErrDeserializationError
	}

	b := cell.NewBuilder()
	if sig != nil {
		if len(sig) != edsig.SignatureSize {
			return nil, ErrSignatureError
		}
		if err := b.StoreBit(true); err != nil {
			return nil, ErrSerializationError
		}
		if err := b.StoreBytes(sig); err != nil {
			return nil, ErrSerializationError
		}
	} else {
		if err := b.StoreBit(false); err != nil {
			return nil, ErrSerializationError
		}
	}
	if err := b.StoreBits(rest); err != nil {
		return nil, ErrSerializationError
	}
	for _, r := range root.Refs() {
		if err := b.StoreRef(r); err != nil {
			return nil, ErrSerializationError
		}
	}
	return b.Finalize(), nil
}

// buildCallCell implements the header+body assembly shared by Encode and
// CreateUnsignedCall (spec §4.3 steps 1-4).
func buildCallCell(fn Function, call FunctionCall, clk Clock, reserve bool) (*cell.Cell, error) {
	if len(call.Inputs) != len(fn.Inputs) {
		return nil, ErrTypeMismatch
	}
	for i, in := range call.Inputs {
		if in.Signature() != fn.Inputs[i].TypeSignature() {
			return nil, ErrTypeMismatch
		}
	}

	var leaves []*cell.Cell
	if !call.Internal {
		b := cell.NewBuilder()
		if reserve {
			if err := b.StoreBit(true); err != nil {
				return nil, ErrSerializationError
			}
			if err := b.StoreBigUint(big.NewInt(0), signatureReserveBits); err != nil {
				return nil, ErrSerializationError
			}
		} else {
			if err := b.StoreBit(false); err != nil {
				return nil, ErrSerializationError
			}
		}
		leaves = append(leaves, b.Finalize())

		for _, hp := range fn.Header {
			val, ok := call.Header[hp.Name]
			if ok {
				if val.Signature() != hp.TypeSignature() {
					return nil, ErrTypeMismatch
				}
			} else {
				val, ok = DefaultValue(hp, clk)
				if !ok {
					return nil, ErrMissingHeaderValue
				}
			}
			hLeaves, err := Serialize(val)
			if err != nil {
				return nil, err
			}
			leaves = append(leaves, hLeaves...)
		}
	}

	idBuilder := cell.NewBuilder()
	if err := idBuilder.StoreUint(uint64(fn.InputID), 32); err != nil {
		return nil, ErrSerializationError
	}
	leaves = append(leaves, idBuilder.Finalize())

	for _, in := range call.Inputs {
		iLeaves, err := Serialize(in)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, iLeaves...)
	}

	return Pack(leaves)
}

// DecodeOutput implements the Function Decoder (§4.4): it validates the
// output_id selector and reads each output Parameter in order.
func DecodeOutput(fn Function, root *cell.Cell) ([]Value, error) {
	cur := NewCursor(root)
	id, err := cur.LoadUint(32)
	if err != nil {
		return nil, err
	}
	if uint32(id) != fn.OutputID {
		return nil, ErrSelectorMismatch
	}
	outputs := make([]Value, len(fn.Outputs))
	for i, p := range fn.Outputs {
		v, err := Deserialize(cur, p)
		if err != nil {
			return nil, err
		}
		outputs[i] = v
	}
	if err := cur.AssertClean(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// DecodeParams reads back a call body for round-tripping or inspection: it
// mirrors Encode's header/body layout for the same internal flag,
// including skipping the signature bit (and signature bits, when present)
// for external calls.
func DecodeParams(fn Function, root *cell.Cell, internal bool) (map[string]Value, []Value, error) {
	cur := NewCursor(root)
	header := make(map[string]Value)
	if !internal {
		present, err := cur.LoadUint(1)
		if err != nil {
			return nil, nil, err
		}
		if present == 1 {
			if _, err := cur.LoadBigUint(signatureReserveBits); err != nil {
				return nil, nil, err
			}
		}
		for _, hp := range fn.Header {
			v, err := Deserialize(cur, hp)
			if err != nil {
				return nil, nil, err
			}
			header[hp.Name] = v
		}
	}

	id, err := cur.LoadUint(32)
	if err != nil {
		return nil, nil, err
	}
	if uint32(id) != fn.InputID {
		return nil, nil, ErrSelectorMismatch
	}
	inputs := make([]Value, len(fn.Inputs))
	for i, p := range fn.Inputs {
		v, err := Deserialize(cur, p)
		if err != nil {
			return nil, nil, err
		}
		inputs[i] = v
	}
	if err := cur.AssertClean(); err != nil {
		return nil, nil, err
	}
	return header, inputs, nil
}
