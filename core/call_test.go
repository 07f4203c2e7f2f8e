package core

import (
	"math/big"
	"testing"
	"time"

	"tvmabi/pkg/edsig"
)

func TestPingConcreteScenario(t *testing.T) {
	fn := Function{Name: "ping"}
	cache, err := NewFunctionIDCache(16)
	if err != nil {
		t.Fatalf("NewFunctionIDCache: %v", err)
	}
	fn.ResolveIDs(cache)

	wantID := FunctionID("ping()()v2") & 0x7FFFFFFF
	if fn.InputID != wantID {
		t.Fatalf("got input_id %x, want %x", fn.InputID, wantID)
	}

	call := FunctionCall{Internal: true}
	root, err := Encode(fn, call, RealClock{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if root.BitLen() != 32 {
		t.Fatalf("got %d bits, want 32", root.BitLen())
	}
}

func TestFunctionIDEqualSignatureEqualID(t *testing.T) {
	a := Function{Name: "transfer", Inputs: []Parameter{NewAddress("dest"), NewUint("amount", 128)}}
	b := Function{Name: "transfer", Inputs: []Parameter{NewAddress("dest"), NewUint("amount", 128)}}
	cache, _ := NewFunctionIDCache(16)
	a.ResolveIDs(cache)
	b.ResolveIDs(cache)
	if a.InputID != b.InputID || a.OutputID != b.OutputID {
		t.Fatal("functions with equal canonical signature derived different ids")
	}
}

func TestInternalCallDecodeParamsRoundTrip(t *testing.T) {
	fn := Function{
		Name:    "swap",
		Inputs:  []Parameter{NewUint("amount", 64), NewBool("exact")},
		Outputs: []Parameter{NewUint("result", 64)},
	}
	cache, _ := NewFunctionIDCache(16)
	fn.ResolveIDs(cache)

	amountVal, _ := ValueUint(fn.Inputs[0], big.NewInt(12345))
	exactVal, _ := ValueBool(fn.Inputs[1], true)
	call := FunctionCall{Internal: true, Inputs: []Value{amountVal, exactVal}}

	root, err := Encode(fn, call, RealClock{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	header, inputs, err := DecodeParams(fn, root, true)
	if err != nil {
		t.Fatalf("DecodeParams: %v", err)
	}
	if len(header) != 0 {
		t.Fatalf("got %d header entries, want 0", len(header))
	}
	if len(inputs) != 2 || inputs[0].Int.Int64() != 12345 || !inputs[1].Bool {
		t.Fatalf("unexpected inputs: %+v", inputs)
	}
}

func TestSignedExternalCall(t *testing.T) {
	fn := Function{
		Name: "transfer",
		Header: []Parameter{
			NewPublicKey("pubkey"),
			NewTime("time"),
			NewExpire("expire"),
		},
		Inputs: []Parameter{NewAddress("dest"), NewUint("amount", 128)},
	}
	cache, _ := NewFunctionIDCache(16)
	fn.ResolveIDs(cache)

	pub, priv, err := edsig.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	var pubArr [32]byte
	copy(pubArr[:], pub)

	destVal, _ := ValueAddress(fn.Inputs[0], Address{Workchain: 0, AccountHash: [32]byte{1, 2, 3}})
	amountVal, _ := ValueUint(fn.Inputs[1], big.NewInt(1_000_000))

	pubVal, _ := ValuePublicKey(fn.Header[0], &pubArr)
	timeVal, _ := ValueTime(fn.Header[1], 1_700_000_000_000)
	expireVal, _ := ValueExpire(fn.Header[2], 1_700_000_060)

	call := FunctionCall{
		Header: map[string]Value{
			"pubkey": pubVal,
			"time":   timeVal,
			"expire": expireVal,
		},
		Inputs:     []Value{destVal, amountVal},
		PrivateKey: priv,
	}

	root, err := Encode(fn, call, RealClock{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	header, inputs, err := DecodeParams(fn, root, false)
	if err != nil {
		t.Fatalf("DecodeParams: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("got %d inputs, want 2", len(inputs))
	}
	if header["time"].Time != 1_700_000_000_000 {
		t.Fatalf("time mismatch: %+v", header["time"])
	}

	unsignedCall := call
	unsignedCall.PrivateKey = nil
	unsignedCall.ReserveSign = true
	unsignedRoot, hash, err := CreateUnsignedCall(fn, unsignedCall, RealClock{})
	if err != nil {
		t.Fatalf("CreateUnsignedCall: %v", err)
	}
	_ = unsignedRoot
	sig, err := edsig.Sign(priv, hash[:])
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !edsig.Verify(pub, hash[:], sig) {
		t.Fatal("signature does not verify against the unsigned-call hash")
	}
}

func TestSelectorMismatch(t *testing.T) {
	fn := Function{Name: "foo", Outputs: []Parameter{NewBool("ok")}}
	cache, _ := NewFunctionIDCache(16)
	fn.ResolveIDs(cache)

	other := Function{Name: "bar", Outputs: []Parameter{NewBool("ok")}}
	other.ResolveIDs(cache)

	okVal, _ := ValueBool(fn.Outputs[0], true)
	_ = okVal

	root, err := Encode(other, FunctionCall{Internal: true}, RealClock{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := DecodeOutput(fn, root); err != ErrSelectorMismatch {
		t.Fatalf("got %v, want ErrSelectorMismatch", err)
	}
}

func TestTimeDefaultUsesClock(t *testing.T) {
	fn := Function{
		Name:   "ping2",
		Header: []Parameter{NewTime("time")},
	}
	cache, _ := NewFunctionIDCache(16)
	fn.ResolveIDs(cache)

	fixed := FixedClock{At: time.UnixMilli(42_000)}
	root, err := Encode(fn, FunctionCall{}, fixed)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	header, _, err := DecodeParams(fn, root, false)
	if err != nil {
		t.Fatalf("DecodeParams: %v", err)
	}
	if header["time"].Time != 42_000 {
		t.Fatalf("got %d, want 42000", header["time"].Time)
	}
}

func TestMissingHeaderValueWithoutDefault(t *testing.T) {
	// Cell is a compound kind with no default value (§3), so omitting it
	// from an external call's header must surface ErrMissingHeaderValue
	// rather than silently falling back to a zero value.
	fn := Function{
		Name:   "needsManifest",
		Header: []Parameter{NewCell("manifest")},
	}
	cache, _ := NewFunctionIDCache(16)
	fn.ResolveIDs(cache)

	_, err := Encode(fn, FunctionCall{}, RealClock{})
	if err != ErrMissingHeaderValue {
		t.Fatalf("got %v, want ErrMissingHeaderValue", err)
	}
}
