package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// newRootCmd wires every subcommand. Running the bare binary serves.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nora",
		Short:         "Nora research matching core",
		Long:          "Nora matches medical students with professors' research projects.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := newServeCmd()
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newCatalogCmd(), newSmokeCmd())
	return root
}
