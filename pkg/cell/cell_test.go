package cell

import "testing"

func TestBuilderStoreUintRoundTrip(t *testing.T) {
	cases := []struct {
		value uint64
		bits  int
	}{
		{0, 1},
		{1, 1},
		{42, 8},
		{0xFFFFFFFF, 32},
		{1<<64 - 1, 64},
	}
	for _, tc := range cases {
		b := NewBuilder()
		if err := b.StoreUint(tc.value, tc.bits); err != nil {
			t.Fatalf("StoreUint(%d, %d): %v", tc.value, tc.bits, err)
		}
		c := b.Finalize()
		s := NewSlice(c)
		got, err := s.LoadUint(tc.bits)
		if err != nil {
			t.Fatalf("LoadUint: %v", err)
		}
		want := tc.value
		if tc.bits < 64 {
			want &= (1 << uint(tc.bits)) - 1
		}
		if got != want {
			t.Fatalf("round trip mismatch: got %d want %d", got, want)
		}
	}
}

func TestBuilderStoreIntRoundTrip(t *testing.T) {
	cases := []struct {
		value int64
		bits  int
	}{
		{0, 8},
		{-1, 8},
		{127, 8},
		{-128, 8},
		{-1, 64},
	}
	for _, tc := range cases {
		b := NewBuilder()
		if err := b.StoreInt(tc.value, tc.bits); err != nil {
			t.Fatalf("StoreInt(%d, %d): %v", tc.value, tc.bits, err)
		}
		s := NewSlice(b.Finalize())
		got, err := s.LoadInt(tc.bits)
		if err != nil {
			t.Fatalf("LoadInt: %v", err)
		}
		if got != tc.value {
			t.Fatalf("round trip mismatch: got %d want %d", got, tc.value)
		}
	}
}

func TestBuilderBitOverflow(t *testing.T) {
	b := NewBuilder()
	if err := b.StoreBits(make([]bool, MaxBits)); err != nil {
		t.Fatalf("fill to capacity: %v", err)
	}
	if err := b.StoreBit(true); err != ErrBitOverflow {
		t.Fatalf("got %v, want ErrBitOverflow", err)
	}
}

func TestBuilderRefOverflow(t *testing.T) {
	b := NewBuilder()
	leaf := NewBuilder().Finalize()
	for i := 0; i < MaxRefs; i++ {
		if err := b.StoreRef(leaf); err != nil {
			t.Fatalf("StoreRef %d: %v", i, err)
		}
	}
	if err := b.StoreRef(leaf); err != ErrRefOverflow {
		t.Fatalf("got %v, want ErrRefOverflow", err)
	}
}

func TestSliceExhausted(t *testing.T) {
	b := NewBuilder()
	_ = b.StoreUint(1, 1)
	s := NewSlice(b.Finalize())
	if _, err := s.LoadUint(8); err != ErrSliceExhausted {
		t.Fatalf("got %v, want ErrSliceExhausted", err)
	}
}

func TestAssertEnd(t *testing.T) {
	b := NewBuilder()
	_ = b.StoreUint(5, 8)
	c := b.Finalize()

	s := NewSlice(c)
	if err := s.AssertEnd(); err != ErrResidualData {
		t.Fatalf("got %v, want ErrResidualData before consuming", err)
	}
	if _, err := s.LoadUint(8); err != nil {
		t.Fatalf("LoadUint: %v", err)
	}
	if err := s.AssertEnd(); err != nil {
		t.Fatalf("AssertEnd after full consumption: %v", err)
	}
}

func TestCellHashStructuralEquality(t *testing.T) {
	leaf := func() *Cell {
		b := NewBuilder()
		_ = b.StoreUint(7, 8)
		return b.Finalize()
	}

	a := NewBuilder()
	_ = a.StoreUint(1, 1)
	_ = a.StoreRef(leaf())
	cellA := a.Finalize()

	b := NewBuilder()
	_ = b.StoreUint(1, 1)
	_ = b.StoreRef(leaf())
	cellB := b.Finalize()

	if !cellA.Equal(cellB) {
		t.Fatal("structurally identical cells should hash equal")
	}

	c := NewBuilder()
	_ = c.StoreUint(0, 1)
	_ = c.StoreRef(leaf())
	cellC := c.Finalize()

	if cellA.Equal(cellC) {
		t.Fatal("structurally different cells should not hash equal")
	}
}

func TestStoreBytesAndLoadBytes(t *testing.T) {
	data := []byte{0x01, 0x42, 0xFF, 0x00}
	b := NewBuilder()
	if err := b.StoreBytes(data); err != nil {
		t.Fatalf("StoreBytes: %v", err)
	}
	s := NewSlice(b.Finalize())
	got, err := s.LoadBytes(len(data))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("byte %d: got %x want %x", i, got[i], data[i])
		}
	}
}
