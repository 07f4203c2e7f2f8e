package services

import "testing"

func TestEncodePingInternal(t *testing.T) {
	svc, err := NewABIService(16)
	if err != nil {
		t.Fatalf("NewABIService: %v", err)
	}
	res, err := svc.Encode(EncodeRequest{Function: "ping", Internal: true})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if res.Bits != 32 {
		t.Fatalf("got %d bits, want 32", res.Bits)
	}
}

func TestEncodeUnknownFunction(t *testing.T) {
	svc, _ := NewABIService(16)
	if _, err := svc.Encode(EncodeRequest{Function: "doesNotExist"}); err == nil {
		t.Fatal("expected an error for an unregistered function")
	}
}

func TestEncodeMissingInput(t *testing.T) {
	svc, _ := NewABIService(16)
	if _, err := svc.Encode(EncodeRequest{Function: "transfer", Internal: true, Inputs: map[string]string{}}); err == nil {
		t.Fatal("expected an error for a missing required input")
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	svc, _ := NewABIService(16)
	res, err := svc.Decode("balanceOf")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(res.Inputs) != 1 {
		t.Fatalf("got %d inputs, want 1", len(res.Inputs))
	}
}

func TestFunctionIDKnownFunction(t *testing.T) {
	svc, _ := NewABIService(16)
	res, err := svc.FunctionID("ping")
	if err != nil {
		t.Fatalf("FunctionID: %v", err)
	}
	if res.InputID == "" || res.OutputID == "" {
		t.Fatalf("unexpected empty ids: %+v", res)
	}
}
