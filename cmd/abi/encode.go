package main

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tvmabi/core"
)

func encodeCmd() *cobra.Command {
	var (
		function string
		internal bool
		destHex  string
		amount   string
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "encode a registered demo function call and print its representation hash",
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, ok := lookupFunction(function)
			if !ok {
				return fmt.Errorf("unknown function %q", function)
			}

			call := core.FunctionCall{Internal: internal}
			for _, p := range fn.Inputs {
				switch p.Kind {
				case core.KindAddress:
					raw, err := hex.DecodeString(destHex)
					if err != nil || len(raw) != 32 {
						return fmt.Errorf("--dest must be 32 bytes of hex")
					}
					var hash [32]byte
					copy(hash[:], raw)
					v, err := core.ValueAddress(p, core.Address{Workchain: 0, AccountHash: hash})
					if err != nil {
						return err
					}
					call.Inputs = append(call.Inputs, v)
				case core.KindUint:
					n, ok := new(big.Int).SetString(amount, 10)
					if !ok {
						return fmt.Errorf("--amount must be a base-10 integer")
					}
					v, err := core.ValueUint(p, n)
					if err != nil {
						return err
					}
					call.Inputs = append(call.Inputs, v)
				default:
					return fmt.Errorf("encode: unsupported demo parameter kind %s", p.Kind)
				}
			}

			root, err := core.Encode(fn, call, core.RealClock{})
			if err != nil {
				return err
			}
			hash := root.Hash()
			log.WithFields(logrus.Fields{
				"function":   fn.Name,
				"input_id":   fmt.Sprintf("%08x", fn.InputID),
				"cell_hash":  hex.EncodeToString(hash[:]),
				"bits":       root.BitLen(),
				"refs":       root.RefsLen(),
			}).Info("encoded function call")
			fmt.Println(hex.EncodeToString(hash[:]))
			return nil
		},
	}
	cmd.Flags().StringVar(&function, "function", "ping", "registered function name")
	cmd.Flags().BoolVar(&internal, "internal", true, "encode as an internal message (no header/signature)")
	cmd.Flags().StringVar(&destHex, "dest", "", "32-byte hex account hash, for functions taking an address input")
	cmd.Flags().StringVar(&amount, "amount", "0", "base-10 integer, for functions taking a uint input")
	return cmd
}
