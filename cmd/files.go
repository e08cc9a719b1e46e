package cmd

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/koopa0/scout/internal/console"
	"github.com/koopa0/scout/internal/i18n"
)

// newFilesCmd creates the files command (factory pattern).
func newFilesCmd(a *app) *cobra.Command {
	filesCmd := &cobra.Command{
		Use:   "files",
		Short: "Manage a file connector's files",
	}

	filesCmd.AddCommand(newFilesListCmd(a))
	filesCmd.AddCommand(newFilesSelectCmd(a, "select", true))
	filesCmd.AddCommand(newFilesSelectCmd(a, "deselect", false))
	filesCmd.AddCommand(newFilesPruneCmd(a))

	return filesCmd
}

func newFilesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <connector-id>",
		Short: "List a connector's files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			connectorID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid connector ID: %s", args[0])
			}
			ed, err := loadFileEditor(cmd.Context(), a, connectorID)
			if err != nil {
				return err
			}

			rows := ed.Rows()
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("page.empty"))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSELECTED\tSIZE")
			for _, f := range rows {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", f.ID, f.Name, onOff(f.Selected), f.SizeBytes)
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("flushing output: %w", err)
			}
			return nil
		},
	}
}

func newFilesSelectCmd(a *app, use string, selected bool) *cobra.Command {
	short := "Include files in indexing"
	if !selected {
		short = "Exclude files from indexing"
	}
	return &cobra.Command{
		Use:   use + " <connector-id> <file-id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			connectorID, fileIDs, err := parseFileArgs(args)
			if err != nil {
				return err
			}
			ed, err := loadFileEditor(cmd.Context(), a, connectorID)
			if err != nil {
				return err
			}
			for _, id := range fileIDs {
				ed.SetSelected(id, selected)
			}
			return saveFiles(cmd, ed)
		},
	}
}

func newFilesPruneCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "prune <connector-id> <file-id>...",
		Short: "Remove files from a connector",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			connectorID, fileIDs, err := parseFileArgs(args)
			if err != nil {
				return err
			}
			ed, err := loadFileEditor(cmd.Context(), a, connectorID)
			if err != nil {
				return err
			}
			for _, id := range fileIDs {
				ed.Remove(id)
			}

			// Emptying the whole table is almost always a mistake; make
			// the user say so explicitly.
			if ed.WouldRemoveAllRows() && !force {
				if !confirm(cmd, i18n.T("edit.confirm.empty")) {
					ed.Cancel()
					fmt.Fprintln(cmd.OutOrStdout(), i18n.T("edit.aborted"))
					return nil
				}
			}
			return saveFiles(cmd, ed)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "skip the remove-all confirmation prompt")
	return cmd
}

func parseFileArgs(args []string) (connectorID int, fileIDs []int, err error) {
	connectorID, err = strconv.Atoi(args[0])
	if err != nil {
		return 0, nil, fmt.Errorf("invalid connector ID: %s", args[0])
	}
	for _, arg := range args[1:] {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return 0, nil, fmt.Errorf("invalid file ID: %s", arg)
		}
		fileIDs = append(fileIDs, id)
	}
	return connectorID, fileIDs, nil
}

func loadFileEditor(ctx context.Context, a *app, connectorID int) (*console.FileEditor, error) {
	ed, err := console.NewFileEditor(a.client, connectorID, a.logger)
	if err != nil {
		return nil, err
	}
	if err := ed.Load(ctx); err != nil {
		return nil, err
	}
	return ed, nil
}

func saveFiles(cmd *cobra.Command, ed *console.FileEditor) error {
	dirty := ed.IsDirty()
	if err := ed.Save(cmd.Context()); err != nil {
		return fmt.Errorf("%s", i18n.Sprintf("edit.save.error", err))
	}
	if !dirty {
		fmt.Fprintln(cmd.OutOrStdout(), i18n.T("edit.nothing"))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), i18n.T("edit.clean"))
	}
	return nil
}
