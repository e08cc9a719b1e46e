package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/koopa0/scout/internal/console"
	"github.com/koopa0/scout/internal/i18n"
)

// newAssistantCmd creates the assistant command (factory pattern).
func newAssistantCmd(a *app) *cobra.Command {
	assistantCmd := &cobra.Command{
		Use:   "assistant",
		Short: "Inspect and edit an assistant definition",
	}

	assistantCmd.AddCommand(newAssistantShowCmd(a))
	assistantCmd.AddCommand(newAssistantSetCmd(a))

	return assistantCmd
}

func newAssistantShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <assistant-id>",
		Short: "Show an assistant's model, temperature, and tools",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, assistantID, err := loadAssistantEditor(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			assistant, err := ed.Assistant()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.Sprintf("assistant.title", assistantID))
			fmt.Fprintf(out, "Name:        %s\n", assistant.Name)
			fmt.Fprintf(out, "Model:       %s\n", assistant.ModelName)
			fmt.Fprintf(out, "Temperature: %.2f\n", assistant.Temperature)
			fmt.Fprintf(out, "Description: %s\n", assistant.Description)
			fmt.Fprintln(out, "Tools:")
			for _, tool := range assistant.Tools {
				fmt.Fprintf(out, "  %s\t%s\n", tool.Name, onOff(tool.Enabled))
			}
			return nil
		},
	}
}

func newAssistantSetCmd(a *app) *cobra.Command {
	var (
		model       string
		temperature float64
		description string
		enableTool  []string
		disableTool []string
		allTools    string
	)
	cmd := &cobra.Command{
		Use:   "set <assistant-id>",
		Short: "Edit an assistant's model, temperature, or tools",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, _, err := loadAssistantEditor(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("model") {
				ed.SetModel(model)
			}
			if cmd.Flags().Changed("temperature") {
				ed.SetTemperature(temperature)
			}
			if cmd.Flags().Changed("description") {
				ed.SetDescription(description)
			}
			for _, name := range enableTool {
				ed.SetToolEnabled(name, true)
			}
			for _, name := range disableTool {
				ed.SetToolEnabled(name, false)
			}
			switch allTools {
			case "":
			case "on":
				ed.SetAllTools(true)
			case "off":
				ed.SetAllTools(false)
			default:
				return fmt.Errorf("--all-tools must be 'on' or 'off', got %q", allTools)
			}

			if !ed.IsDirty() {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("edit.nothing"))
				return ed.Save(cmd.Context()) // no-op, zero network calls
			}
			if err := ed.Save(cmd.Context()); err != nil {
				return fmt.Errorf("%s", i18n.Sprintf("edit.save.error", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("assistant.saved"))
			return nil
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "model name")
	cmd.Flags().Float64Var(&temperature, "temperature", 0, "sampling temperature")
	cmd.Flags().StringVar(&description, "description", "", "assistant description")
	cmd.Flags().StringSliceVar(&enableTool, "enable-tool", nil, "tool to enable (repeatable)")
	cmd.Flags().StringSliceVar(&disableTool, "disable-tool", nil, "tool to disable (repeatable)")
	cmd.Flags().StringVar(&allTools, "all-tools", "", "toggle every tool: on or off")
	return cmd
}

func loadAssistantEditor(ctx context.Context, a *app, rawID string) (*console.AssistantEditor, int, error) {
	assistantID, err := strconv.Atoi(rawID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid assistant ID: %s", rawID)
	}
	ed, err := console.NewAssistantEditor(a.client, assistantID, a.logger)
	if err != nil {
		return nil, 0, err
	}
	if err := ed.Load(ctx); err != nil {
		return nil, 0, err
	}
	return ed, assistantID, nil
}
