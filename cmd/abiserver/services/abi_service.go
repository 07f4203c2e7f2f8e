// Package services wraps the core ABI codec for the HTTP API, mirroring
// the teacher's walletserver/services split.
package services

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"tvmabi/core"
)

// Registry is a small, fixed set of demo function schemas the HTTP API
// operates on. Parsing arbitrary ABI JSON schemas from a request body is
// out of scope (spec.md Non-goals).
var Registry = map[string]core.Function{
	"ping": {
		Name: "ping",
	},
	"transfer": {
		Name: "transfer",
		Header: []core.Parameter{
			core.NewPublicKey("pubkey"),
			core.NewTime("time"),
			core.NewExpire("expire"),
		},
		Inputs: []core.Parameter{
			core.NewAddress("dest"),
			core.NewUint("amount", 128),
		},
	},
	"balanceOf": {
		Name:    "balanceOf",
		Inputs:  []core.Parameter{core.NewAddress("who")},
		Outputs: []core.Parameter{core.NewUint("balance", 64)},
	},
}

// ABIService is the thin application layer between HTTP controllers and
// the core codec.
type ABIService struct {
	cache *core.FunctionIDCache
}

// NewABIService builds an ABIService with a function-id cache sized as
// configured, and resolves every Registry entry's ids against it.
func NewABIService(cacheSize int) (*ABIService, error) {
	cache, err := core.NewFunctionIDCache(cacheSize)
	if err != nil {
		return nil, err
	}
	for name, fn := range Registry {
		fn.ResolveIDs(cache)
		Registry[name] = fn
	}
	return &ABIService{cache: cache}, nil
}

// Lookup returns a registered function by name.
func (s *ABIService) Lookup(name string) (core.Function, bool) {
	fn, ok := Registry[name]
	return fn, ok
}

// EncodeRequest carries the parameters an encode call needs for the
// registry's currently supported input kinds (address, uint).
type EncodeRequest struct {
	Function string            `json:"function"`
	Internal bool              `json:"internal"`
	Inputs   map[string]string `json:"inputs"`
}

// EncodeResult summarizes an encoded call without exposing a wire format
// the codec does not define (spec.md Non-goals: persistence).
type EncodeResult struct {
	Function string `json:"function"`
	InputID  string `json:"input_id"`
	CellHash string `json:"cell_hash"`
	Bits     int    `json:"bits"`
	Refs     int    `json:"refs"`
}

// Encode builds req.Function's call from the supplied named input values
// and returns a summary of the resulting cell.
func (s *ABIService) Encode(req EncodeRequest) (EncodeResult, error) {
	fn, ok := s.Lookup(req.Function)
	if !ok {
		return EncodeResult{}, fmt.Errorf("unknown function %q", req.Function)
	}

	call := core.FunctionCall{Internal: req.Internal}
	for _, p := range fn.Inputs {
		raw, ok := req.Inputs[p.Name]
		if !ok {
			return EncodeResult{}, fmt.Errorf("missing input %q", p.Name)
		}
		v, err := parseScalarInput(p, raw)
		if err != nil {
			return EncodeResult{}, err
		}
		call.Inputs = append(call.Inputs, v)
	}

	root, err := core.Encode(fn, call, core.RealClock{})
	if err != nil {
		return EncodeResult{}, err
	}
	hash := root.Hash()
	return EncodeResult{
		Function: fn.Name,
		InputID:  fmt.Sprintf("0x%08x", fn.InputID),
		CellHash: fmt.Sprintf("%x", hash),
		Bits:     root.BitLen(),
		Refs:     root.RefsLen(),
	}, nil
}

func parseScalarInput(p core.Parameter, raw string) (core.Value, error) {
	switch p.Kind {
	case core.KindUint:
		n, ok := new(big.Int).SetString(raw, 10)
		if !ok {
			return core.Value{}, fmt.Errorf("input %q: not a base-10 integer", p.Name)
		}
		return core.ValueUint(p, n)
	case core.KindAddress:
		decoded, err := hex.DecodeString(raw)
		if err != nil || len(decoded) != 32 {
			return core.Value{}, fmt.Errorf("input %q: expected 32-byte hex account hash", p.Name)
		}
		var hash [32]byte
		copy(hash[:], decoded)
		return core.ValueAddress(p, core.Address{Workchain: 0, AccountHash: hash})
	default:
		return core.Value{}, fmt.Errorf("input %q: unsupported demo parameter kind %s", p.Name, p.Kind)
	}
}

// DecodeResult mirrors DecodeParams' output for JSON transport.
type DecodeResult struct {
	Function string            `json:"function"`
	Header   map[string]string `json:"header"`
	Inputs   []string          `json:"inputs"`
}

// Decode re-encodes req.Function with default field values, then decodes
// it back, demonstrating the round trip without a wire format to ingest
// externally produced cells from (spec.md Non-goals).
func (s *ABIService) Decode(functionName string) (DecodeResult, error) {
	fn, ok := s.Lookup(functionName)
	if !ok {
		return DecodeResult{}, fmt.Errorf("unknown function %q", functionName)
	}

	call := core.FunctionCall{Internal: true}
	for _, p := range fn.Inputs {
		v, ok := core.DefaultValue(p, core.RealClock{})
		if !ok {
			return DecodeResult{}, fmt.Errorf("no default value for input %q", p.Name)
		}
		call.Inputs = append(call.Inputs, v)
	}

	root, err := core.Encode(fn, call, core.RealClock{})
	if err != nil {
		return DecodeResult{}, err
	}
	header, inputs, err := core.DecodeParams(fn, root, call.Internal)
	if err != nil {
		return DecodeResult{}, err
	}

	res := DecodeResult{Function: fn.Name, Header: make(map[string]string)}
	for name, v := range header {
		res.Header[name] = v.Param.TypeSignature()
	}
	for _, v := range inputs {
		res.Inputs = append(res.Inputs, v.Param.TypeSignature())
	}
	return res, nil
}

// FunctionIDResult reports a registered function's derived selectors.
type FunctionIDResult struct {
	Function            string `json:"function"`
	CanonicalSignature  string `json:"canonical_signature"`
	InputID             string `json:"input_id"`
	OutputID            string `json:"output_id"`
}

// FunctionID returns functionName's derived input_id/output_id.
func (s *ABIService) FunctionID(functionName string) (FunctionIDResult, error) {
	fn, ok := s.Lookup(functionName)
	if !ok {
		return FunctionIDResult{}, fmt.Errorf("unknown function %q", functionName)
	}
	return FunctionIDResult{
		Function:           fn.Name,
		CanonicalSignature: fn.CanonicalSignature(),
		InputID:            fmt.Sprintf("0x%08x", fn.InputID),
		OutputID:           fmt.Sprintf("0x%08x", fn.OutputID),
	}, nil
}
