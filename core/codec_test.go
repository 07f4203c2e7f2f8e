package core

import (
	"math/big"
	"testing"

	"tvmabi/pkg/cell"
)

func roundTrip(t *testing.T, v Value) Value {
	t.Helper()
	leaves, err := Serialize(v)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	root, err := Pack(leaves)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	cur := NewCursor(root)
	got, err := Deserialize(cur, v.Param)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if err := cur.AssertClean(); err != nil {
		t.Fatalf("AssertClean: %v", err)
	}
	return got
}

func TestUintBoundaries(t *testing.T) {
	widths := []int{1, 8, 32, 64, 256}
	for _, w := range widths {
		p := NewUint("v", w)
		max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(w)), big.NewInt(1))
		for _, n := range []*big.Int{big.NewInt(0), big.NewInt(1), max} {
			v, err := ValueUint(p, n)
			if err != nil {
				t.Fatalf("ValueUint(%d): %v", n, err)
			}
			got := roundTrip(t, v)
			if got.Int.Cmp(n) != 0 {
				t.Fatalf("width %d: got %s want %s", w, got.Int, n)
			}
		}
		over := new(big.Int).Add(max, big.NewInt(1))
		if _, err := ValueUint(p, over); err != ErrValueOutOfRange {
			t.Fatalf("width %d: expected ErrValueOutOfRange, got %v", w, err)
		}
	}
}

func TestBoolRoundTrip(t *testing.T) {
	p := NewBool("flag")
	for _, b := range []bool{true, false} {
		v, _ := ValueBool(p, b)
		got := roundTrip(t, v)
		if got.Bool != b {
			t.Fatalf("got %v want %v", got.Bool, b)
		}
	}
}

func TestUint32ConcreteScenario(t *testing.T) {
	p := NewUint("v", 32)
	v, err := ValueUint(p, big.NewInt(0xDEADBEEF))
	if err != nil {
		t.Fatalf("ValueUint: %v", err)
	}
	leaves, err := Serialize(v)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	root, err := Pack(leaves)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if root.BitLen() != 32 {
		t.Fatalf("got %d bits, want 32", root.BitLen())
	}
	s := cell.NewSlice(root)
	got, err := s.LoadUint(32)
	if err != nil {
		t.Fatalf("LoadUint: %v", err)
	}
	if got != 0xDEADBEEF {
		t.Fatalf("got %x want deadbeef", got)
	}
}

func TestFixedBytesBoundaries(t *testing.T) {
	for _, n := range []int{0, 1, 127, 128} {
		p := NewFixedBytes("b", n)
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i)
		}
		v, err := ValueFixedBytes(p, data)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		got := roundTrip(t, v)
		if len(got.Bytes) != n {
			t.Fatalf("n=%d: got %d bytes", n, len(got.Bytes))
		}
		for i := range data {
			if got.Bytes[i] != data[i] {
				t.Fatalf("n=%d byte %d mismatch", n, i)
			}
		}
	}
}

func TestFixedBytesWrongLength(t *testing.T) {
	p := NewFixedBytes("b", 4)
	if _, err := ValueFixedBytes(p, make([]byte, 5)); err != ErrValueOutOfRange {
		t.Fatalf("got %v, want ErrValueOutOfRange", err)
	}
}

func TestBytesChunking130Bytes(t *testing.T) {
	p := NewBytes("b")
	data := make([]byte, 130)
	for i := range data {
		data[i] = byte(i)
	}
	v, _ := ValueBytes(p, data)
	leaves, err := Serialize(v)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	root, err := Pack(leaves)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	s := cell.NewSlice(root)
	chunk1, err := s.LoadRef()
	if err != nil {
		t.Fatalf("LoadRef: %v", err)
	}
	if chunk1.BitLen() != 127*8 {
		t.Fatalf("first chunk has %d bits, want %d", chunk1.BitLen(), 127*8)
	}
	if chunk1.RefsLen() != 1 {
		t.Fatalf("first chunk has %d refs, want 1", chunk1.RefsLen())
	}
	chunk2 := chunk1.Refs()[0]
	if chunk2.BitLen() != 3*8 {
		t.Fatalf("second chunk has %d bits, want %d", chunk2.BitLen(), 3*8)
	}

	got := roundTrip(t, v)
	if len(got.Bytes) != len(data) {
		t.Fatalf("got %d bytes, want %d", len(got.Bytes), len(data))
	}
}

func TestTupleBoundaries(t *testing.T) {
	cases := [][]Parameter{
		{},
		{NewUint("a", 8)},
		{NewUint("a", 8), NewBool("b"), NewInt("c", 16)},
	}
	for _, elems := range cases {
		p := NewTuple("t", elems)
		values := make([]Value, len(elems))
		for i, e := range elems {
			if e.Kind == KindBool {
				values[i], _ = ValueBool(e, true)
			} else if e.Kind == KindUint {
				values[i], _ = ValueUint(e, big.NewInt(7))
			} else {
				values[i], _ = ValueInt(e, big.NewInt(-3))
			}
		}
		v, err := ValueTuple(p, values)
		if err != nil {
			t.Fatalf("ValueTuple: %v", err)
		}
		got := roundTrip(t, v)
		if len(got.Elements) != len(elems) {
			t.Fatalf("got %d elements, want %d", len(got.Elements), len(elems))
		}
	}
}

func TestArrayBoundaries(t *testing.T) {
	elemParam := NewUint("e", 16)
	for _, n := range []int{0, 1, 10000} {
		p := NewArray("arr", elemParam)
		elements := make([]Value, n)
		for i := range elements {
			elements[i], _ = ValueUint(elemParam, big.NewInt(int64(i%65536)))
		}
		v, err := ValueArray(p, elements)
		if err != nil {
			t.Fatalf("n=%d: ValueArray: %v", n, err)
		}
		got := roundTrip(t, v)
		if len(got.Elements) != n {
			t.Fatalf("n=%d: got %d elements", n, len(got.Elements))
		}
		for i, e := range got.Elements {
			if e.Int.Int64() != int64(i%65536) {
				t.Fatalf("n=%d: element %d mismatch: %s", n, i, e.Int)
			}
		}
	}
}

func TestFixedArrayLengthMismatch(t *testing.T) {
	elemParam := NewUint("e", 8)
	p := NewFixedArray("arr", elemParam, 3)
	v1, _ := ValueUint(elemParam, big.NewInt(1))
	if _, err := ValueFixedArray(p, []Value{v1}); err != ErrValueOutOfRange {
		t.Fatalf("got %v, want ErrValueOutOfRange", err)
	}
}

func TestMapKeyWidths(t *testing.T) {
	for _, width := range []int{1, 8, 32, 256} {
		keyParam := NewUint("k", width)
		valParam := NewBool("v")
		p := NewMap("m", keyParam, valParam)
		k1, _ := ValueUint(keyParam, big.NewInt(0))
		v1, _ := ValueBool(valParam, true)
		k2, _ := ValueUint(keyParam, big.NewInt(1))
		v2, _ := ValueBool(valParam, false)
		mv, err := ValueMap(p, []MapEntry{{Key: k1, Val: v1}, {Key: k2, Val: v2}})
		if err != nil {
			t.Fatalf("width %d: ValueMap: %v", width, err)
		}
		got := roundTrip(t, mv)
		if len(got.Entries) != 2 {
			t.Fatalf("width %d: got %d entries", width, len(got.Entries))
		}
	}
}

func TestAddressConcreteScenario(t *testing.T) {
	p := NewAddress("addr")
	v, _ := ValueAddress(p, Address{Workchain: 0, AccountHash: [32]byte{}})
	leaves, err := Serialize(v)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	root, err := Pack(leaves)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if root.BitLen() != 267 {
		t.Fatalf("got %d bits, want 267", root.BitLen())
	}
	got := roundTrip(t, v)
	if got.Addr.Workchain != 0 || got.Addr.AccountHash != [32]byte{} {
		t.Fatalf("round trip mismatch: %+v", got.Addr)
	}
}

func TestPublicKeyPresentAbsent(t *testing.T) {
	p := NewPublicKey("pk")
	v1, _ := ValuePublicKey(p, nil)
	got1 := roundTrip(t, v1)
	if got1.PubKey != nil {
		t.Fatal("expected nil pubkey")
	}
	var key [32]byte
	key[0] = 0xAB
	v2, _ := ValuePublicKey(p, &key)
	got2 := roundTrip(t, v2)
	if got2.PubKey == nil || *got2.PubKey != key {
		t.Fatal("pubkey round trip mismatch")
	}
}

func TestGramRoundTrip(t *testing.T) {
	p := NewGram("amount")
	v, _ := ValueGram(p, big.NewInt(1_000_000_000))
	got := roundTrip(t, v)
	if got.Int.Int64() != 1_000_000_000 {
		t.Fatalf("got %s", got.Int)
	}
}

func TestCellValueByReference(t *testing.T) {
	p := NewCell("c")
	inner := cell.NewBuilder()
	_ = inner.StoreUint(42, 8)
	v, _ := ValueCell(p, inner.Finalize())
	got := roundTrip(t, v)
	if got.Cell.BitLen() != 8 {
		t.Fatalf("got %d bits", got.Cell.BitLen())
	}
}

func TestPackerNeverExceedsBudget(t *testing.T) {
	var leaves []*cell.Cell
	for i := 0; i < 50; i++ {
		b := cell.NewBuilder()
		_ = b.StoreUint(0, 100)
		leaves = append(leaves, b.Finalize())
	}
	root, err := Pack(leaves)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	for c := root; c != nil; {
		if c.BitLen() > cell.MaxBits {
			t.Fatalf("cell exceeds %d bits: %d", cell.MaxBits, c.BitLen())
		}
		if c.RefsLen() > cell.MaxRefs {
			t.Fatalf("cell exceeds %d refs: %d", cell.MaxRefs, c.RefsLen())
		}
		if c.RefsLen() == 0 {
			break
		}
		c = c.Refs()[c.RefsLen()-1]
	}
}
