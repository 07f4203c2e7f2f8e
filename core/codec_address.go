package core

import "tvmabi/pkg/cell"

// serializeAddress writes the addr_std$10 layout: 2 tag bits (10), 1
// anycast bit (0), 8 bits signed workchain, 256 bits account hash — 267
// bits total, matching spec §8 concrete scenario 4.
func serializeAddress(v Value) ([]*cell.Cell, error) {
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
	return packOne(b)
}

func deserializeAddress(cur *Cursor, p Parameter) (Value, error) {
	tag, err := cur.LoadUint(2)
	if err != nil {
		return Value{}, err
	}
	if tag != 0b10 {
		return Value{}, ErrDeserializationError
	}
	if _, err := cur.LoadUint(1); err != nil { // anycast, unsupported
		return Value{}, err
	}
	wc, err := cur.LoadInt(8)
	if err != nil {
		return Value{}, err
	}
	hashBytes, err := cur.LoadBytes(32)
	if err != nil {
		return Value{}, err
	}
	var addr Address
	addr.Workchain = int32(wc)
	copy(addr.AccountHash[:], hashBytes)
	return ValueAddress(p, addr)
}
