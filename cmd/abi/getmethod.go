package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tvmabi/core"
	"tvmabi/internal/vm"
	"tvmabi/pkg/cell"
)

func getMethodCmd() *cobra.Command {
	var (
		function string
		codePath string
		dataHex  string
	)
	cmd := &cobra.Command{
		Use:   "getmethod",
		Short: "run a registered function's get-method against a WASM module",
		Long: "Contract code/data are stored in a single cell's bit payload for this demo " +
			"(at most 127 bytes each); real deployments would chunk larger code the way " +
			"Bytes values are chunked by the codec.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, ok := lookupFunction(function)
			if !ok {
				return fmt.Errorf("unknown function %q", function)
			}
			code, err := os.ReadFile(codePath)
			if err != nil {
				return err
			}
			if len(code) > 127 {
				return fmt.Errorf("getmethod: code exceeds the 127-byte demo cell budget (%d bytes)", len(code))
			}
			data, err := hex.DecodeString(dataHex)
			if err != nil {
				return err
			}
			if len(data) > 127 {
				return fmt.Errorf("getmethod: data exceeds the 127-byte demo cell budget (%d bytes)", len(data))
			}

			codeCell, err := bytesToCell(code)
			if err != nil {
				return err
			}
			dataCell, err := bytesToCell(data)
			if err != nil {
				return err
			}

			account := core.AccountStateInfo{
				State: core.StateActive,
				Details: core.StateDetails{
					Code: codeCell,
					Data: dataCell,
				},
			}

			runtime := vm.NewWasmRuntime(log.WithField("function", fn.Name))
			runner := vm.NewRunner(runtime)

			var inputs []core.Value
			for _, p := range fn.Inputs {
				v, ok := core.DefaultValue(p, core.RealClock{})
				if !ok {
					return fmt.Errorf("no default value for input %s", p.Name)
				}
				inputs = append(inputs, v)
			}

			outputs, err := runner.Run(fn, account, inputs)
			if err != nil {
				return err
			}
			for i, v := range outputs {
				fmt.Printf("output[%d]: %s\n", i, v.Param.TypeSignature())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&function, "function", "balanceOf", "registered function name")
	cmd.Flags().StringVar(&codePath, "code", "", "path to a WASM module exporting get_method/abi_alloc/memory")
	cmd.Flags().StringVar(&dataHex, "data", "", "hex-encoded account data preloaded into guest memory")
	return cmd
}

func bytesToCell(data []byte) (*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := b.StoreBytes(data); err != nil {
		return nil, err
	}
	return b.Finalize(), nil
}
