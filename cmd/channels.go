package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/koopa0/scout/internal/console"
	"github.com/koopa0/scout/internal/i18n"
)

// newChannelsCmd creates the channels command (factory pattern).
func newChannelsCmd(a *app) *cobra.Command {
	channelsCmd := &cobra.Command{
		Use:   "channels",
		Short: "Manage per-channel Discord bot configuration",
	}

	channelsCmd.AddCommand(newChannelsListCmd(a))
	channelsCmd.AddCommand(newChannelsToggleCmd(a, "enable", true))
	channelsCmd.AddCommand(newChannelsToggleCmd(a, "disable", false))

	return channelsCmd
}

func newChannelsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <guild-id>",
		Short: "List a guild's channel configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			guildID := args[0]
			ed, err := loadChannelEditor(cmd.Context(), a, guildID)
			if err != nil {
				return err
			}

			rows := ed.Rows()
			fmt.Fprintln(cmd.OutOrStdout(), i18n.Sprintf("channels.title", guildID))
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("channels.none"))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCHANNEL\tANSWER\tBOTS\tCITATIONS")
			for _, cc := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					cc.ID, cc.ChannelName,
					onOff(cc.AnswerEnabled), onOff(cc.RespondToBots), onOff(cc.CitationsEnabled))
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("flushing output: %w", err)
			}
			return nil
		},
	}
}

// newChannelsToggleCmd toggles answering for one channel, or for every
// channel of the guild when no channel ID is given. The bulk form is a
// single atomic write.
func newChannelsToggleCmd(a *app, use string, enabled bool) *cobra.Command {
	short := "Enable bot answers in a channel (or all channels)"
	if !enabled {
		short = "Disable bot answers in a channel (or all channels)"
	}
	return &cobra.Command{
		Use:   use + " <guild-id> [channel-config-id]",
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			guildID := args[0]
			ed, err := loadChannelEditor(cmd.Context(), a, guildID)
			if err != nil {
				return err
			}

			if len(args) == 2 {
				id, err := uuid.Parse(args[1])
				if err != nil {
					return fmt.Errorf("invalid channel config ID: %s", args[1])
				}
				ed.SetAnswerEnabled(id, enabled)
			} else if enabled {
				ed.EnableAll()
			} else {
				ed.DisableAll()
			}
			return saveChannels(cmd, ed)
		},
	}
}

func loadChannelEditor(ctx context.Context, a *app, guildID string) (*console.ChannelEditor, error) {
	ed, err := console.NewChannelEditor(a.client, guildID, a.logger)
	if err != nil {
		return nil, err
	}
	if err := ed.Load(ctx); err != nil {
		return nil, err
	}
	return ed, nil
}

func saveChannels(cmd *cobra.Command, ed *console.ChannelEditor) error {
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
