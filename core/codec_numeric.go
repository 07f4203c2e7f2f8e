package core

import (
	"math/big"

	"tvmabi/pkg/cell"
)

func serializeNumeric(v Value) ([]*cell.Cell, error) {
	b := cell.NewBuilder()
	var err error
	if v.Param.Kind == KindUint {
		err = b.StoreBigUint(v.Int, v.Param.Width)
	} else {
		err = b.StoreBigInt(v.Int, v.Param.Width)
	}
	if err != nil {
		return nil, ErrSerializationError
	}
	return packOne(b)
}

func deserializeNumeric(cur *Cursor, p Parameter) (Value, error) {
	if p.Kind == KindUint {
		v, err := cur.LoadBigUint(p.Width)
		if err != nil {
			return Value{}, err
		}
		return ValueUint(p, v)
	}
	v, err := cur.LoadBigInt(p.Width)
	if err != nil {
		return Value{}, err
	}
	return ValueInt(p, v)
}

func serializeBool(v Value) ([]*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := b.StoreBit(v.Bool); err != nil {
		return nil, ErrSerializationError
	}
	return packOne(b)
}

func deserializeBool(cur *Cursor, p Parameter) (Value, error) {
	bit, err := cur.LoadUint(1)
	if err != nil {
		return Value{}, err
	}
	return ValueBool(p, bit != 0)
}

func serializeTime(v Value) ([]*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := b.StoreUint(v.Time, 64); err != nil {
		return nil, ErrSerializationError
	}
	return packOne(b)
}

func deserializeTime(cur *Cursor, p Parameter) (Value, error) {
	v, err := cur.LoadUint(64)
	if err != nil {
		return Value{}, err
	}
	return ValueTime(p, v)
}

func serializeExpire(v Value) ([]*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := b.StoreUint(uint64(v.Expire), 32); err != nil {
		return nil, ErrSerializationError
	}
	return packOne(b)
}

func deserializeExpire(cur *Cursor, p Parameter) (Value, error) {
	v, err := cur.LoadUint(32)
	if err != nil {
		return Value{}, err
	}
	return ValueExpire(p, uint32(v))
}

// gramMaxBytes is the widest amount the 4-bit length prefix can describe.
const gramMaxBytes = 15

func serializeGram(v Value) ([]*cell.Cell, error) {
	raw := v.Int.Bytes()
	if len(raw) > gramMaxBytes {
		return nil, ErrValueOutOfRange
	}
	b := cell.NewBuilder()
	if err := b.StoreUint(uint64(len(raw)), 4); err != nil {
		return nil, ErrSerializationError
	}
	if err := b.StoreBytes(raw); err != nil {
		return nil, ErrSerializationError
	}
	return packOne(b)
}

func deserializeGram(cur *Cursor, p Parameter) (Value, error) {
	length, err := cur.LoadUint(4)
	if err != nil {
		return Value{}, err
	}
	raw, err := cur.LoadBytes(int(length))
	if err != nil {
		return Value{}, err
	}
	amount := new(big.Int).SetBytes(raw)
	return ValueGram(p, amount)
}
