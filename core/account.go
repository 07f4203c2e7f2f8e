package core

import "tvmabi/pkg/cell"

// AccountState enumerates the lifecycle states spec §3 names for
// AccountStateInfo.state. Modeled as a Go enum rather than a bare string,
// grounded on the teacher's memState account bookkeeping in
// core/virtual_machine.go.
type AccountState int

const (
	StateEmpty AccountState = iota
	StateUninit
	StateFrozen
	StateActive
	StateUnknown
)

func (s AccountState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateUninit:
		return "uninit"
	case StateFrozen:
		return "frozen"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// StateDetails carries the opaque account-state payload the Get-Method
// Runner needs once an account is confirmed active: its code and data
// cells and the c7 register tuple seeded into the VM.
type StateDetails struct {
	Code *cell.Cell
	Data *cell.Cell
	C7   []Value
}

// AccountStateInfo is a snapshot of one account as seen by the Get-Method
// Runner (spec §3).
type AccountStateInfo struct {
	Workchain           int32
	AddressHash         [32]byte
	SyncTime            uint64
	Balance             uint64
	State               AccountState
	LastTransactionLT   uint64
	LastTransactionHash [32]byte
	Details             StateDetails
}
