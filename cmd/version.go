package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/koopa0/scout/internal/i18n"
)

// Version is the console version, overridable at build time with
// -ldflags "-X github.com/koopa0/scout/cmd.Version=...".
var Version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the console version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), i18n.Sprintf("app.version", Version))
		},
	}
}
