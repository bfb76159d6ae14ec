package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	red  = color.New(color.FgRed).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "codom",
		Short:         "Decompile stack-machine method bodies into statement trees",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return processGlobalFlags()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Config file")
	flags.StringP("code", "c", "", "Listing to read")
	flags.Bool("stdin", false, "Read the listing from stdin")
	flags.Bool("no-color", false, "Disable colored output")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error, disabled)")
	viper.BindPFlags(flags)

	root.AddCommand(newDecompileCmd(), newDisCmd())
	return root
}

func main() {
	viper.SetEnvPrefix("codom")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := newRootCmd().Execute(); err != nil {
		fatal(err)
	}
}
