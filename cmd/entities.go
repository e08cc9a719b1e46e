package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/koopa0/scout/internal/console"
	"github.com/koopa0/scout/internal/i18n"
)

// newEntitiesCmd creates the entities command (factory pattern).
func newEntitiesCmd(a *app) *cobra.Command {
	entitiesCmd := &cobra.Command{
		Use:   "entities",
		Short: "Manage knowledge-graph entity types",
	}

	entitiesCmd.AddCommand(newEntitiesListCmd(a))
	entitiesCmd.AddCommand(newEntitiesToggleCmd(a, "enable", true))
	entitiesCmd.AddCommand(newEntitiesToggleCmd(a, "disable", false))
	entitiesCmd.AddCommand(newEntitiesToggleAllCmd(a, "enable-all", true))
	entitiesCmd.AddCommand(newEntitiesToggleAllCmd(a, "disable-all", false))
	entitiesCmd.AddCommand(newEntitiesDescribeCmd(a))

	return entitiesCmd
}

func newEntitiesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List entity types and their active state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := loadEntityEditor(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer ed.Close()

			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("entities.title"))
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tACTIVE\tDESCRIPTION")
			for _, et := range ed.Rows() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", et.Name, onOff(et.Active), et.Description)
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("flushing output: %w", err)
			}
			return nil
		},
	}
}

func newEntitiesToggleCmd(a *app, use string, active bool) *cobra.Command {
	short := "Activate an entity type"
	if !active {
		short = "Deactivate an entity type"
	}
	return &cobra.Command{
		Use:   use + " <name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			ed, err := loadEntityEditor(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer ed.Close()

			if _, ok := findEntityType(ed, name); !ok {
				return fmt.Errorf("%s", i18n.Sprintf("entities.unknown", name))
			}
			ed.SetActive(name, active)
			if err := saveEntities(cmd, ed); err != nil {
				return err
			}
			key := "entities.disabled"
			if active {
				key = "entities.enabled"
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.Sprintf(key, name))
			return nil
		},
	}
}

func newEntitiesToggleAllCmd(a *app, use string, active bool) *cobra.Command {
	short := "Activate every entity type"
	if !active {
		short = "Deactivate every entity type"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := loadEntityEditor(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer ed.Close()

			if active {
				ed.EnableAll()
			} else {
				ed.DisableAll()
			}
			return saveEntities(cmd, ed)
		},
	}
}

func newEntitiesDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <name> <description>",
		Short: "Set an entity type's description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, description := args[0], args[1]
			ed, err := loadEntityEditor(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer ed.Close()

			if _, ok := findEntityType(ed, name); !ok {
				return fmt.Errorf("%s", i18n.Sprintf("entities.unknown", name))
			}
			ed.SetDescription(name, description)
			return saveEntities(cmd, ed)
		},
	}
}

// loadEntityEditor builds the editor without auto-save; one-shot commands
// save explicitly.
func loadEntityEditor(ctx context.Context, a *app) (*console.EntityTypeEditor, error) {
	ed, err := console.NewEntityTypeEditor(a.client, 0, a.logger)
	if err != nil {
		return nil, err
	}
	if err := ed.Load(ctx); err != nil {
		return nil, err
	}
	return ed, nil
}

func findEntityType(ed *console.EntityTypeEditor, name string) (int, bool) {
	for i, et := range ed.Rows() {
		if et.Name == name {
			return i, true
		}
	}
	return 0, false
}

func saveEntities(cmd *cobra.Command, ed *console.EntityTypeEditor) error {
	changed := len(ed.Diff())
	if err := ed.Save(cmd.Context()); err != nil {
		return fmt.Errorf("%s", i18n.Sprintf("edit.save.error", err))
	}
	if changed == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), i18n.T("edit.nothing"))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), i18n.Sprintf("edit.saved", changed))
	}
	return nil
}
