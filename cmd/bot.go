package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/koopa0/scout/internal/i18n"
)

// newBotCmd creates the bot command (factory pattern).
func newBotCmd(a *app) *cobra.Command {
	botCmd := &cobra.Command{
		Use:   "bot",
		Short: "Manage the Discord bot registration",
	}

	botCmd.AddCommand(newBotStatusCmd(a))
	botCmd.AddCommand(newBotRegisterCmd(a))
	botCmd.AddCommand(newBotRemoveCmd(a))

	return botCmd
}

func newBotStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the bot is registered",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.client.GetBotConfig(cmd.Context())
			if err != nil {
				return err
			}
			if cfg.Configured {
				since := "unknown"
				if cfg.CreatedAt != nil {
					since = cfg.CreatedAt.Format(time.RFC3339)
				}
				fmt.Fprintln(cmd.OutOrStdout(), i18n.Sprintf("bot.configured", since))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("bot.unconfigured"))
			}
			return nil
		},
	}
}

func newBotRegisterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "register <bot-token>",
		Short: "Register the Discord bot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.client.CreateBotConfig(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("bot.registered"))
			return nil
		},
	}
}

func newBotRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove the Discord bot registration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.DeleteBotConfig(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("bot.removed"))
			return nil
		},
	}
}
