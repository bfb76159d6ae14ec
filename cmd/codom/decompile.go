package main

import (
	"context"
	"fmt"
	"io"

	"github.com/deepnoodle-ai/codom/asm"
	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/decompiler"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newDecompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decompile [file]",
		Aliases: []string{"d"},
		Short:   "Decompile the methods of an assembly listing",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			input, filename, err := getListing(cmd, args)
			if err != nil {
				return err
			}
			return decompileListing(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), input, filename)
		},
	}
	flags := cmd.Flags()
	flags.Bool("lenient", false, "Keep the partial tree of a method that fails")
	flags.StringP("format", "o", "text", "Output format (text, json, yaml)")
	flags.StringP("method", "m", "", "Decompile only the named method")
	flags.Bool("trace", false, "Print the trace of each method in text output")
	cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func getDecompilerOptions(logger zerolog.Logger, wk *bytecode.WellKnown) []decompiler.Option {
	opts := []decompiler.Option{
		decompiler.WithLogger(logger),
		decompiler.WithWellKnown(wk),
	}
	if viper.GetBool("lenient") {
		opts = append(opts, decompiler.WithLenient())
	}
	return opts
}

// parseListing reads every method of the listing, or only the one selected
// with --method.
func parseListing(ctx context.Context, input, filename string, wk *bytecode.WellKnown) ([]*bytecode.MethodBody, error) {
	bodies, err := asm.ParseAll(ctx, input, asm.WithFilename(filename), asm.WithWellKnown(wk))
	if err != nil {
		return nil, err
	}
	name := viper.GetString("method")
	if name == "" {
		return bodies, nil
	}
	for _, body := range bodies {
		m := body.Method()
		if m.Name == name || m.FullName() == name {
			return []*bytecode.MethodBody{body}, nil
		}
	}
	return nil, fmt.Errorf("method %q not found", name)
}

func decompileListing(ctx context.Context, out, errOut io.Writer, input, filename string) error {
	logger, err := newLogger(errOut)
	if err != nil {
		return err
	}
	wk := bytecode.NewWellKnown()
	bodies, err := parseListing(ctx, input, filename, wk)
	if err != nil {
		return err
	}

	d := decompiler.New(getDecompilerOptions(logger, wk)...)
	reports := make([]report, 0, len(bodies))
	for _, body := range bodies {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := d.Decompile(body)
		if err != nil {
			return fmt.Errorf("%s: %w", body.Method().FullName(), err)
		}
		reports = append(reports, newReport(d, res))
	}

	output, err := getOutput(reports, viper.GetString("format"))
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, output)
	return err
}
