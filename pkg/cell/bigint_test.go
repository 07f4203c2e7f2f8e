package cell

import (
	"math/big"
	"testing"
)

func TestBigUintRoundTrip(t *testing.T) {
	cases := []struct {
		value *big.Int
		bits  int
	}{
		{big.NewInt(0), 8},
		{big.NewInt(255), 8},
		{new(big.Int).Lsh(big.NewInt(1), 256), 257},
	}
	for _, tc := range cases {
		b := NewBuilder()
		if err := b.StoreBigUint(tc.value, tc.bits); err != nil {
			t.Fatalf("StoreBigUint: %v", err)
		}
		s := NewSlice(b.Finalize())
		got, err := s.LoadBigUint(tc.bits)
		if err != nil {
			t.Fatalf("LoadBigUint: %v", err)
		}
		if got.Cmp(tc.value) != 0 {
			t.Fatalf("got %s want %s", got, tc.value)
		}
	}
}

func TestBigIntRoundTripNegative(t *testing.T) {
	value := big.NewInt(-12345)
	b := NewBuilder()
	if err := b.StoreBigInt(value, 32); err != nil {
		t.Fatalf("StoreBigInt: %v", err)
	}
	s := NewSlice(b.Finalize())
	got, err := s.LoadBigInt(32)
	if err != nil {
		t.Fatalf("LoadBigInt: %v", err)
	}
	if got.Cmp(value) != 0 {
		t.Fatalf("got %s want %s", got, value)
	}
}

func TestBigUintBitOverflow(t *testing.T) {
	b := NewBuilder()
	_ = b.StoreBits(make([]bool, MaxBits-8))
	if err := b.StoreBigUint(big.NewInt(1), 16); err != ErrBitOverflow {
		t.Fatalf("got %v, want ErrBitOverflow", err)
	}
}
