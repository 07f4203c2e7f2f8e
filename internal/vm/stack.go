package vm

import (
	"encoding/binary"
	"errors"
	"math/big"

	"tvmabi/core"
	"tvmabi/pkg/cell"
)

// Wire tags for the flat byte encoding EncodeStackItems/DecodeStackItems
// use to cross the WASM memory boundary, mirroring the teacher's
// ptr/len host_read/host_write convention in core/virtual_machine.go but
// carrying a self-describing tag per slot instead of a fixed key/value
// shape.
const (
	tagInt byte = iota
	tagCell
	tagSlice
	tagTuple
)

var errMalformedStack = errors.New("vm: malformed stack encoding")

// EncodeStackItems flattens a get-method argument list into the byte
// stream a WasmRuntime instance writes into guest memory before calling
// get_method.
func EncodeStackItems(items []core.StackItem) ([]byte, error) {
	var buf []byte
	for _, it := range items {
		enc, err := encodeOne(it)
		if err != nil {
			return nil, err
		}
		buf = append(buf, enc...)
	}
	return buf, nil
}

func encodeOne(it core.StackItem) ([]byte, error) {
	switch it.Kind {
	case core.StackInt:
		n := it.Int
		if n == nil {
			n = big.NewInt(0)
		}
		sign := byte(0)
		if n.Sign() < 0 {
			sign = 1
		}
		mag := new(big.Int).Abs(n).Bytes()
		head := make([]byte, 1+1+4)
		head[0] = tagInt
		head[1] = sign
		binary.BigEndian.PutUint32(head[2:], uint32(len(mag)))
		return append(head, mag...), nil
	case core.StackCell:
		payload, refs := flattenCell(it.Cell)
		head := make([]byte, 1+4+4+1)
		head[0] = tagCell
		binary.BigEndian.PutUint32(head[1:], uint32(boolsLen(it.Cell)))
		binary.BigEndian.PutUint32(head[5:], uint32(len(payload)))
		head[9] = byte(len(refs))
		out := append(head, payload...)
		for _, r := range refs {
			sub, err := encodeOne(core.StackItem{Kind: core.StackCell, Cell: r})
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil
	case core.StackSlice:
		return encodeOne(core.StackItem{Kind: core.StackCell, Cell: it.Cell})
	case core.StackTuple:
		head := make([]byte, 1+4)
		head[0] = tagTuple
		binary.BigEndian.PutUint32(head[1:], uint32(len(it.Tuple)))
		out := head
		for _, sub := range it.Tuple {
			enc, err := encodeOne(sub)
			if err != nil {
				return nil, err
			}
			out = append(out, enc...)
		}
		return out, nil
	default:
		return nil, errMalformedStack
	}
}

func boolsLen(c *cell.Cell) int {
	if c == nil {
		return 0
	}
	return c.BitLen()
}

func flattenCell(c *cell.Cell) ([]byte, []*cell.Cell) {
	if c == nil {
		return nil, nil
	}
	return c.Bits(), c.Refs()
}

// DecodeStackItems parses count slots from a byte stream produced by a
// get_method call's returned output region.
func DecodeStackItems(data []byte, count int) ([]core.StackItem, error) {
	items := make([]core.StackItem, 0, count)
	rest := data
	for i := 0; i < count; i++ {
		item, remaining, err := decodeOne(rest)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		rest = remaining
	}
	return items, nil
}

func decodeOne(data []byte) (core.StackItem, []byte, error) {
	if len(data) < 1 {
		return core.StackItem{}, nil, errMalformedStack
	}
	switch data[0] {
	case tagInt:
		if len(data) < 6 {
			return core.StackItem{}, nil, errMalformedStack
		}
		sign := data[1]
		n := binary.BigEndian.Uint32(data[2:6])
		if len(data) < int(6+n) {
			return core.StackItem{}, nil, errMalformedStack
		}
		mag := data[6 : 6+n]
		val := new(big.Int).SetBytes(mag)
		if sign == 1 {
			val.Neg(val)
		}
		return core.StackItem{Kind: core.StackInt, Int: val}, data[6+n:], nil
	case tagCell:
		if len(data) < 10 {
			return core.StackItem{}, nil, errMalformedStack
		}
		bitLen := int(binary.BigEndian.Uint32(data[1:5]))
		byteLen := int(binary.BigEndian.Uint32(data[5:9]))
		refCount := int(data[9])
		if len(data) < 10+byteLen {
			return core.StackItem{}, nil, errMalformedStack
		}
		payload := data[10 : 10+byteLen]
		rest := data[10+byteLen:]

		b := cell.NewBuilder()
		bits := bytesToBits(payload, bitLen)
		if err := b.StoreBits(bits); err != nil {
			return core.StackItem{}, nil, err
		}
		for i := 0; i < refCount; i++ {
			sub, remaining, err := decodeOne(rest)
			if err != nil {
				return core.StackItem{}, nil, err
			}
			if err := b.StoreRef(sub.Cell); err != nil {
				return core.StackItem{}, nil, err
			}
			rest = remaining
		}
		return core.StackItem{Kind: core.StackCell, Cell: b.Finalize()}, rest, nil
	case tagTuple:
		if len(data) < 5 {
			return core.StackItem{}, nil, errMalformedStack
		}
		count := int(binary.BigEndian.Uint32(data[1:5]))
		rest := data[5:]
		tuple := make([]core.StackItem, 0, count)
		for i := 0; i < count; i++ {
			item, remaining, err := decodeOne(rest)
			if err != nil {
				return core.StackItem{}, nil, err
			}
			tuple = append(tuple, item)
			rest = remaining
		}
		return core.StackItem{Kind: core.StackTuple, Tuple: tuple}, rest, nil
	default:
		return core.StackItem{}, nil, errMalformedStack
	}
}

func bytesToBits(data []byte, bitLen int) []bool {
	bits := make([]bool, bitLen)
	for i := 0; i < bitLen; i++ {
		byteIdx := i / 8
		bitIdx := 7 - uint(i%8)
		bits[i] = (data[byteIdx]>>bitIdx)&1 == 1
	}
	return bits
}
