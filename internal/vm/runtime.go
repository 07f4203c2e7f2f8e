// Package vm provides the Get-Method Runner backend: a wasmer-go-backed
// implementation of the core.Runtime/core.Instance collaborators, adapted
// from the teacher's HeavyVM wasmer wiring in core/virtual_machine.go.
// The real TVM executor is out of scope (spec.md §1); any Runtime that
// satisfies core.Runtime is interchangeable without touching the codec.
package vm

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/wasmerio/wasmer-go/wasmer"

	"tvmabi/core"
)

var (
	// ErrMemoryExport is returned when a contract module does not export
	// linear memory named "memory".
	ErrMemoryExport = errors.New("vm: wasm module does not export memory")
	// ErrMissingExports is returned when a contract module lacks the
	// abi_alloc/get_method exports the runner requires.
	ErrMissingExports = errors.New("vm: wasm module missing abi_alloc or get_method export")
)

// WasmRuntime instantiates contract code as a WASM module exposing an
// exported get_method(selector, argsPtr, argsLen) function: arguments and
// results cross guest memory as the tagged byte stream of stack.go, and
// the i64 return value packs the output region's pointer (high 32 bits)
// and length (low 32 bits) (spec.md §4.7, wired per SPEC_FULL.md §4.10).
type WasmRuntime struct {
	engine *wasmer.Engine
	log    *logrus.Entry
}

// NewWasmRuntime constructs a WasmRuntime with its own compilation engine.
func NewWasmRuntime(log *logrus.Entry) *WasmRuntime {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &WasmRuntime{engine: wasmer.NewEngine(), log: log}
}

// Instantiate compiles code and instantiates it with data preloaded into
// guest memory at the address the module's abi_alloc export returns,
// satisfying core.Runtime.
func (rt *WasmRuntime) Instantiate(code, data []byte, c7 []core.Value) (core.Instance, error) {
	store := wasmer.NewStore(rt.engine)
	mod, err := wasmer.NewModule(store, code)
	if err != nil {
		return nil, err
	}

	hctx := &hostContext{log: rt.log}
	imports := registerHostImports(store, hctx)

	instance, err := wasmer.NewInstance(mod, imports)
	if err != nil {
		return nil, err
	}

	mem, err := instance.Exports.GetMemory("memory")
	if err != nil {
		return nil, ErrMemoryExport
	}
	hctx.mem = mem

	alloc, err := instance.Exports.GetFunction("abi_alloc")
	if err != nil {
		return nil, ErrMissingExports
	}
	getMethod, err := instance.Exports.GetFunction("get_method")
	if err != nil {
		return nil, ErrMissingExports
	}

	if len(data) > 0 {
		ptr, err := alloc(int32(len(data)))
		if err != nil {
			return nil, err
		}
		copy(mem.Data()[ptr.(int32):], data)
	}

	return &wasmInstance{
		mem:       mem,
		alloc:     alloc,
		getMethod: getMethod,
		c7:        c7,
	}, nil
}

type wasmInstance struct {
	mu        sync.Mutex
	mem       *wasmer.Memory
	alloc     func(...interface{}) (interface{}, error)
	getMethod func(...interface{}) (interface{}, error)
	c7        []core.Value
	pending   []core.StackItem
}

// PushStack records the get-method arguments for the next Run call.
func (w *wasmInstance) PushStack(items []core.StackItem) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = items
}

// Run writes the pushed stack into guest memory, invokes get_method with
// the given selector, and decodes the returned output region back into
// StackItems.
func (w *wasmInstance) Run(selector uint32) (int, []core.StackItem, error) {
	w.mu.Lock()
	items := w.pending
	w.mu.Unlock()

	payload, err := EncodeStackItems(items)
	if err != nil {
		return -1, nil, err
	}

	var argsPtr int32
	if len(payload) > 0 {
		raw, err := w.alloc(int32(len(payload)))
		if err != nil {
			return -1, nil, err
		}
		argsPtr = raw.(int32)
		copy(w.mem.Data()[argsPtr:], payload)
	}

	ret, err := w.getMethod(int32(selector), argsPtr, int32(len(payload)))
	if err != nil {
		return -1, nil, err
	}
	packed := ret.(int64)
	outPtr := int32(packed >> 32)
	outLen := int32(packed & 0xFFFFFFFF)
	if outLen == 0 {
		return 0, nil, nil
	}

	buf := make([]byte, outLen)
	copy(buf, w.mem.Data()[outPtr:outPtr+outLen])
	out, err := decodeOutputRegion(buf)
	if err != nil {
		return -1, nil, err
	}
	return 0, out, nil
}

// decodeOutputRegion decodes every slot packed into the output buffer,
// since the wire format is self-delimiting (each slot's tag/length
// prefix determines where the next one starts).
func decodeOutputRegion(buf []byte) ([]core.StackItem, error) {
	var out []core.StackItem
	rest := buf
	for len(rest) > 0 {
		item, remaining, err := decodeOne(rest)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
		rest = remaining
	}
	return out, nil
}

// hostContext carries the state the guest-importable host functions close
// over, mirroring the teacher's hostCtx in core/virtual_machine.go.
type hostContext struct {
	mem *wasmer.Memory
	log *logrus.Entry
}

// registerHostImports exposes host_log(ptr, len) to the guest module, the
// only host capability a get-method needs beyond pure computation.
func registerHostImports(store *wasmer.Store, h *hostContext) *wasmer.ImportObject {
	imports := wasmer.NewImportObject()

	hostLog := wasmer.NewFunction(
		store,
		wasmer.NewFunctionType(
			wasmer.NewValueTypes(wasmer.ValueKind(wasmer.I32), wasmer.ValueKind(wasmer.I32)),
			wasmer.NewValueTypes(),
		),
		func(args []wasmer.Value) ([]wasmer.Value, error) {
			ptr, ln := args[0].I32(), args[1].I32()
			if h.mem == nil {
				return []wasmer.Value{}, nil
			}
			msg := make([]byte, ln)
			copy(msg, h.mem.Data()[ptr:ptr+ln])
			h.log.Debug(string(msg))
			return []wasmer.Value{}, nil
		},
	)

	imports.Register("env", map[string]wasmer.IntoExtern{
		"host_log": hostLog,
	})
	return imports
}
