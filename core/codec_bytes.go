package core

import "tvmabi/pkg/cell"

// bytesChunkSize is the maximum raw payload a single chunk cell carries;
// longer byte strings continue via a reference to the next chunk.
const bytesChunkSize = 127

// Bytes values are always boxed behind a single reference to their chunk
// chain rather than inlined into the packer's leaf bits: a chunked payload
// has no self-describing length, so inlining it next to a sibling
// parameter's bits (which the packer is free to do) would make the
// boundary between them unrecoverable on decode.
func serializeBytesValue(v Value) ([]*cell.Cell, error) {
	if v.Param.Kind == KindFixedBytes && len(v.Bytes) != v.Param.Width {
		return nil, ErrValueOutOfRange
	}
	chunk, err := buildByteChunk(v.Bytes)
	if err != nil {
		return nil, err
	}
	b := cell.NewBuilder()
	if err := b.StoreRef(chunk); err != nil {
		return nil, ErrSerializationError
	}
	return packOne(b)
}

func buildByteChunk(data []byte) (*cell.Cell, error) {
	b := cell.NewBuilder()
	n := len(data)
	if n > bytesChunkSize {
		n = bytesChunkSize
	}
	if err := b.StoreBytes(data[:n]); err != nil {
		return nil, ErrSerializationError
	}
	if len(data) > bytesChunkSize {
		next, err := buildByteChunk(data[bytesChunkSize:])
		if err != nil {
			return nil, err
		}
		if err := b.StoreRef(next); err != nil {
			return nil, ErrSerializationError
		}
	}
	return b.Finalize(), nil
}

func readByteChunkChain(chunk *cell.Cell) ([]byte, error) {
	s := cell.NewSlice(chunk)
	if s.RemainingBits()%8 != 0 {
		return nil, ErrDeserializationError
	}
	data, err := s.LoadBytes(s.RemainingBits() / 8)
	if err != nil {
		return nil, ErrDeserializationError
	}
	if s.RemainingRefs() == 0 {
		return data, nil
	}
	next, err := s.LoadRef()
	if err != nil {
		return nil, ErrDeserializationError
	}
	rest, err := readByteChunkChain(next)
	if err != nil {
		return nil, err
	}
	return append(data, rest...), nil
}

func deserializeBytesValue(cur *Cursor, p Parameter) (Value, error) {
	chunk, err := cur.LoadRef()
	if err != nil {
		return Value{}, err
	}
	data, err := readByteChunkChain(chunk)
	if err != nil {
		return Value{}, err
	}
	if p.Kind == KindFixedBytes {
		if len(data) != p.Width {
			return Value{}, ErrValueOutOfRange
		}
		return ValueFixedBytes(p, data)
	}
	return ValueBytes(p, data)
}
