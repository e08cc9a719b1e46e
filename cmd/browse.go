package cmd

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/koopa0/scout/internal/console"
	"github.com/koopa0/scout/internal/tui"
)

// newBrowseCmd creates the browse command: the interactive TUI over a
// connector's indexing history.
func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <connector-id>",
		Short: "Browse a connector's indexing history interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			connectorID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid connector ID: %s", args[0])
			}

			browser, err := console.NewAttemptsBrowser(a.client, connectorID, a.pageOptions(), a.logger)
			if err != nil {
				return err
			}

			model := tui.New(cmd.Context(), browser)
			program := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("running TUI: %w", err)
			}
			return nil
		},
	}
}
