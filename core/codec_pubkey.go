package core

import "tvmabi/pkg/cell"

func serializePublicKey(v Value) ([]*cell.Cell, error) {
	b := cell.NewBuilder()
	present := v.PubKey != nil
	if err := b.StoreBit(present); err != nil {
		return nil, ErrSerializationError
	}
	if present {
		if err := b.StoreBytes(v.PubKey[:]); err != nil {
			return nil, ErrSerializationError
		}
	}
	return packOne(b)
}

func deserializePublicKey(cur *Cursor, p Parameter) (Value, error) {
	present, err := cur.LoadUint(1)
	if err != nil {
		return Value{}, err
	}
	if present == 0 {
		return ValuePublicKey(p, nil)
	}
	raw, err := cur.LoadBytes(32)
	if err != nil {
		return Value{}, err
	}
	var key [32]byte
	copy(key[:], raw)
	return ValuePublicKey(p, &key)
}
