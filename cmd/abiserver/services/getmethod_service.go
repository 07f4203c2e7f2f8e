package services

import (
	"encoding/hex"
	"fmt"

	"github.com/sirupsen/logrus"

	"tvmabi/core"
	"tvmabi/internal/vm"
	"tvmabi/pkg/cell"
)

// demoCellBudgetBytes is the maximum code/data size this HTTP demo will
// box into a single cell's bit payload; cmd/abi/getmethod.go applies the
// same cap.
const demoCellBudgetBytes = 127

// GetMethodService runs registered functions' get-methods against a
// caller-supplied WASM module via a shared vm.Runner, so /debug-style
// history accumulates across requests.
type GetMethodService struct {
	abi    *ABIService
	runner *vm.Runner
}

// NewGetMethodService builds a GetMethodService backed by a fresh
// vm.WasmRuntime.
func NewGetMethodService(abi *ABIService, log *logrus.Entry) *GetMethodService {
	runtime := vm.NewWasmRuntime(log)
	return &GetMethodService{abi: abi, runner: vm.NewRunner(runtime)}
}

// GetMethodRequest is the JSON body of POST /v1/getmethod.
type GetMethodRequest struct {
	Function string `json:"function"`
	CodeHex  string `json:"code_hex"`
	DataHex  string `json:"data_hex"`
}

// GetMethodResult reports the decoded output values' type signatures.
type GetMethodResult struct {
	Function string   `json:"function"`
	Outputs  []string `json:"outputs"`
}

// Run decodes the request's hex code/data, instantiates a contract and
// runs req.Function's get-method against it.
func (s *GetMethodService) Run(req GetMethodRequest) (GetMethodResult, error) {
	fn, ok := s.abi.Lookup(req.Function)
	if !ok {
		return GetMethodResult{}, fmt.Errorf("unknown function %q", req.Function)
	}
	code, err := hex.DecodeString(req.CodeHex)
	if err != nil {
		return GetMethodResult{}, fmt.Errorf("code_hex: %w", err)
	}
	data, err := hex.DecodeString(req.DataHex)
	if err != nil {
		return GetMethodResult{}, fmt.Errorf("data_hex: %w", err)
	}
	if len(code) > demoCellBudgetBytes || len(data) > demoCellBudgetBytes {
		return GetMethodResult{}, fmt.Errorf("code/data must each fit in %d bytes for this demo", demoCellBudgetBytes)
	}

	codeCell, err := bytesToCell(code)
	if err != nil {
		return GetMethodResult{}, err
	}
	dataCell, err := bytesToCell(data)
	if err != nil {
		return GetMethodResult{}, err
	}

	account := core.AccountStateInfo{
		State: core.StateActive,
		Details: core.StateDetails{
			Code: codeCell,
			Data: dataCell,
		},
	}

	var inputs []core.Value
	for _, p := range fn.Inputs {
		v, ok := core.DefaultValue(p, core.RealClock{})
		if !ok {
			return GetMethodResult{}, fmt.Errorf("no default value for input %q", p.Name)
		}
		inputs = append(inputs, v)
	}

	outputs, err := s.runner.Run(fn, account, inputs)
	if err != nil {
		return GetMethodResult{}, err
	}
	res := GetMethodResult{Function: fn.Name}
	for _, v := range outputs {
		res.Outputs = append(res.Outputs, v.Param.TypeSignature())
	}
	return res, nil
}

// History returns the most recent outcome per function run so far, for
// the debug listing.
func (s *GetMethodService) History() []vm.MethodStatus {
	return s.runner.Snapshot()
}

// Runner exposes the underlying vm.Runner so main can attach a
// DebugServer to the same execution history the HTTP API accumulates.
func (s *GetMethodService) Runner() *vm.Runner {
	return s.runner
}

func bytesToCell(data []byte) (*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := b.StoreBytes(data); err != nil {
		return nil, err
	}
	return b.Finalize(), nil
}
