package vm

import (
	"sync"
	"time"

	"tvmabi/core"
)

// MethodStatus is one get-method's most recent execution outcome, served
// by debugserver.go.
type MethodStatus struct {
	Name     string
	ExitCode int
	RanAt    time.Time
	Err      string
}

// Runner wraps core.RunGetMethod with bookkeeping of the last outcome per
// function name, so the debug endpoint has something to report.
type Runner struct {
	rt core.Runtime

	mu      sync.RWMutex
	history map[string]MethodStatus
}

// NewRunner builds a Runner against the given Runtime (typically a
// *WasmRuntime, but any core.Runtime works).
func NewRunner(rt core.Runtime) *Runner {
	return &Runner{rt: rt, history: make(map[string]MethodStatus)}
}

// Run executes fn's get-method against account via the wrapped Runtime,
// recording the outcome for later inspection.
func (r *Runner) Run(fn core.Function, account core.AccountStateInfo, inputs []core.Value) ([]core.Value, error) {
	outputs, err := core.RunGetMethod(fn, account, inputs, r.rt)

	status := MethodStatus{Name: fn.Name, RanAt: time.Now()}
	if vmErr, ok := err.(*core.VmError); ok {
		status.ExitCode = vmErr.ExitCode
		status.Err = vmErr.Error()
	} else if err != nil {
		status.ExitCode = -1
		status.Err = err.Error()
	}

	r.mu.Lock()
	r.history[fn.Name] = status
	r.mu.Unlock()

	return outputs, err
}

// Snapshot returns a copy of the currently tracked method statuses.
func (r *Runner) Snapshot() []MethodStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]MethodStatus, 0, len(r.history))
	for _, s := range r.history {
		out = append(out, s)
	}
	return out
}
