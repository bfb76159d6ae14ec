package main

import (
	"context"
	"fmt"
	"io"

	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/dis"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newDisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dis [file]",
		Short: "List the element stream of each method, exception markers included",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			input, filename, err := getListing(cmd, args)
			if err != nil {
				return err
			}
			return disListing(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), input, filename)
		},
	}
	cmd.Flags().StringP("method", "m", "", "Disassemble only the named method")
	return cmd
}

func disListing(ctx context.Context, out, errOut io.Writer, input, filename string) error {
	bodies, err := parseListing(ctx, input, filename, bytecode.NewWellKnown())
	if err != nil {
		return err
	}
	for i, body := range bodies {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, bold(body.Method().String()))

		// Markers of malformed regions are left out; list the rest.
		instructions, err := dis.Disassemble(body)
		if err != nil {
			fmt.Fprintln(errOut, red(err.Error()))
		}
		if err := dis.Print(instructions, out); err != nil {
			return err
		}
	}
	return nil
}
