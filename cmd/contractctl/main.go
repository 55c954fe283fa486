// Command contractctl is the operator tool of the contract analyzer: it
// scores field documents offline, issues tokens, runs migrations and
// creates development certificates.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "contractctl",
		Short:         "Operate the contract risk analyzer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newAssessCmd(),
		newTokenCmd(),
		newKeygenCmd(),
		newMigrateCmd(),
		newCertsCmd(),
	)
	return root
}
