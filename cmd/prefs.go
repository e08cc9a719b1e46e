package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/koopa0/scout/internal/console"
	"github.com/koopa0/scout/internal/state"
)

// newPrefsCmd creates the prefs command for the locally persisted chat
// controls (model picker, temperature).
func newPrefsCmd(a *app) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage local chat-control preferences",
	}

	prefsCmd.AddCommand(newPrefsShowCmd(a))
	prefsCmd.AddCommand(newPrefsSetCmd(a))

	return prefsCmd
}

func newPrefsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved chat controls",
		RunE: func(cmd *cobra.Command, args []string) error {
			controls, err := openChatControls(a, 0)
			if err != nil {
				return err
			}
			defer controls.Close()

			prefs := controls.Prefs()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Model:       %s\n", prefs.ModelName)
			fmt.Fprintf(out, "Temperature: %.2f\n", prefs.Temperature)
			return nil
		},
	}
}

func newPrefsSetCmd(a *app) *cobra.Command {
	var (
		model       string
		temperature float64
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update the saved chat controls",
		RunE: func(cmd *cobra.Command, args []string) error {
			controls, err := openChatControls(a, a.debounceInterval())
			if err != nil {
				return err
			}
			defer controls.Close()

			if cmd.Flags().Changed("model") {
				controls.SetModel(model)
			}
			if cmd.Flags().Changed("temperature") {
				controls.SetTemperature(temperature)
			}
			// One-shot invocation: persist before exiting instead of
			// waiting out the debounce interval.
			controls.Flush()
			return nil
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "chat model name")
	cmd.Flags().Float64Var(&temperature, "temperature", 0, "chat sampling temperature")
	return cmd
}

func openChatControls(a *app, debounceInterval time.Duration) (*console.ChatControls, error) {
	store, err := state.NewStore(a.logger)
	if err != nil {
		return nil, err
	}
	return console.NewChatControls(store, debounceInterval, a.logger)
}
