package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/koopa0/scout/internal/i18n"
)

// newGuildsCmd creates the guilds command (factory pattern).
func newGuildsCmd(a *app) *cobra.Command {
	guildsCmd := &cobra.Command{
		Use:   "guilds",
		Short: "Manage Discord guild configuration",
	}

	guildsCmd.AddCommand(newGuildsListCmd(a))
	guildsCmd.AddCommand(newGuildsDeleteCmd(a))

	return guildsCmd
}

func newGuildsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured guilds",
		RunE: func(cmd *cobra.Command, args []string) error {
			guilds, err := a.client.ListGuildConfigs(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("guilds.title"))
			if len(guilds) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("guilds.none"))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tGUILD\tNAME\tENABLED")
			for _, g := range guilds {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", g.ID, g.GuildID, g.GuildName, onOff(g.Enabled))
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("flushing output: %w", err)
			}
			return nil
		},
	}
}

func newGuildsDeleteCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete <guild-config-id>",
		Short: "Delete a guild and all of its channel configs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid guild config ID: %s", args[0])
			}

			if !force && !confirm(cmd, i18n.Sprintf("guild.confirm", args[0])) {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("edit.aborted"))
				return nil
			}

			if err := a.client.DeleteGuildConfig(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.Sprintf("guild.deleted", args[0]))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")
	return cmd
}
