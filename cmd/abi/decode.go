package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tvmabi/core"
)

func decodeCmd() *cobra.Command {
	var function string
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "re-encode a registered demo function call with default values and print its decoded fields",
		Long: "decode exercises the Function Decoder against a call this process just built itself: " +
			"there is no bag-of-cells wire format to read an externally supplied cell from (spec.md Non-goals), " +
			"so this command is a round-trip demonstration rather than a general decoder.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, ok := lookupFunction(function)
			if !ok {
				return fmt.Errorf("unknown function %q", function)
			}

			call := core.FunctionCall{Internal: true}
			for _, p := range fn.Inputs {
				v, ok := core.DefaultValue(p, core.RealClock{})
				if !ok {
					return fmt.Errorf("no default value for input %s", p.Name)
				}
				call.Inputs = append(call.Inputs, v)
			}

			root, err := core.Encode(fn, call, core.RealClock{})
			if err != nil {
				return err
			}
			header, inputs, err := core.DecodeParams(fn, root, call.Internal)
			if err != nil {
				return err
			}
			fmt.Printf("function: %s\n", fn.Name)
			for name, v := range header {
				fmt.Printf("header.%s: %s\n", name, v.Param.TypeSignature())
			}
			for i, v := range inputs {
				fmt.Printf("input[%d]: %s\n", i, v.Param.TypeSignature())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&function, "function", "ping", "registered function name")
	return cmd
}
