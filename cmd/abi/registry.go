package main

import "tvmabi/core"

// registry is a small, fixed set of demo function schemas the CLI
// operates on. Parsing arbitrary ABI JSON schemas from the user is out of
// scope (spec.md Non-goals); real callers link core.Function values
// straight into their own Go code instead of going through a CLI at all.
var registry = map[string]core.Function{
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
		Name:   "balanceOf",
		Inputs: []core.Parameter{core.NewAddress("who")},
		Outputs: []core.Parameter{
			core.NewUint("balance", 64),
		},
	},
}

func resolveRegistry(cache *core.FunctionIDCache) {
	for name, fn := range registry {
		fn.ResolveIDs(cache)
		registry[name] = fn
	}
}
