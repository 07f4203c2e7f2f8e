package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func functionIDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "functionid [function]",
		Short: "print the input_id/output_id derived for a registered function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, ok := lookupFunction(args[0])
			if !ok {
				return fmt.Errorf("unknown function %q", args[0])
			}
			fmt.Printf("canonical_signature: %s\n", fn.CanonicalSignature())
			fmt.Printf("input_id:  0x%08x\n", fn.InputID)
			fmt.Printf("output_id: 0x%08x\n", fn.OutputID)
			return nil
		},
	}
	return cmd
}
