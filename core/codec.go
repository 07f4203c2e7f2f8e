package core

import "tvmabi/pkg/cell"

// Serialize dispatches v.Param.Kind to its serializer, returning the
// ordered list of leaf cells the Bit/Ref Packer will later fuse into a
// chain. Dispatch is a plain switch over ParamKind, not a vtable — see
// DESIGN.md.
func Serialize(v Value) ([]*cell.Cell, error) {
	switch v.Param.Kind {
	case KindUint, KindInt:
		return serializeNumeric(v)
	case KindBool:
		return serializeBool(v)
	case KindTuple:
		return serializeTuple(v)
	case KindArray:
		return serializeArray(v, false)
	case KindFixedArray:
		return serializeArray(v, true)
	case KindCell:
		return serializeCell(v)
	case KindMap:
		return serializeMap(v)
	case KindAddress:
		return serializeAddress(v)
	case KindBytes, KindFixedBytes:
		return serializeBytesValue(v)
	case KindGram:
		return serializeGram(v)
	case KindTime:
		return serializeTime(v)
	case KindExpire:
		return serializeExpire(v)
	case KindPublicKey:
		return serializePublicKey(v)
	default:
		return nil, ErrSerializationError
	}
}

// Deserialize dispatches p.Kind to its deserializer, reading from cur.
func Deserialize(cur *Cursor, p Parameter) (Value, error) {
	switch p.Kind {
	case KindUint, KindInt:
		return deserializeNumeric(cur, p)
	case KindBool:
		return deserializeBool(cur, p)
	case KindTuple:
		return deserializeTuple(cur, p)
	case KindArray:
		return deserializeArray(cur, p, false)
	case KindFixedArray:
		return deserializeArray(cur, p, true)
	case KindCell:
		return deserializeCell(cur, p)
	case KindMap:
		return deserializeMap(cur, p)
	case KindAddress:
		return deserializeAddress(cur, p)
	case KindBytes, KindFixedBytes:
		return deserializeBytesValue(cur, p)
	case KindGram:
		return deserializeGram(cur, p)
	case KindTime:
		return deserializeTime(cur, p)
	case KindExpire:
		return deserializeExpire(cur, p)
	case KindPublicKey:
		return deserializePublicKey(cur, p)
	default:
		return Value{}, ErrDeserializationError
	}
}

// packOne is a convenience for the common case of a single-type codec that
// emits exactly one leaf cell.
func packOne(b *cell.Builder) ([]*cell.Cell, error) {
	return []*cell.Cell{b.Finalize()}, nil
}
