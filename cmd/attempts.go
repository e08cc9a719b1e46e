package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/koopa0/scout/internal/console"
	"github.com/koopa0/scout/internal/i18n"
)

// newAttemptsCmd creates the attempts command (factory pattern).
func newAttemptsCmd(a *app) *cobra.Command {
	attemptsCmd := &cobra.Command{
		Use:   "attempts <connector-id>",
		Short: "Show a connector's indexing history",
		Args:  cobra.ExactArgs(1),
	}

	var page int
	attemptsCmd.Flags().IntVar(&page, "page", 0, "0-based page to display")
	attemptsCmd.RunE = func(cmd *cobra.Command, args []string) error {
		connectorID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid connector ID: %s", args[0])
		}
		return runAttemptsList(cmd, a, connectorID, page)
	}

	attemptsCmd.AddCommand(newAttemptErrorsCmd(a))
	return attemptsCmd
}

func newAttemptErrorsCmd(a *app) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "errors <attempt-id>",
		Short: "Show an attempt's document-level failures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attemptID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid attempt ID: %s", args[0])
			}
			return runAttemptErrors(cmd, a, attemptID, page)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "0-based page to display")
	return cmd
}

func runAttemptsList(cmd *cobra.Command, a *app, connectorID, page int) error {
	browser, err := console.NewAttemptsBrowser(a.client, connectorID, a.pageOptions(), a.logger)
	if err != nil {
		return err
	}
	if err := browser.GoToPage(cmd.Context(), page); err != nil {
		return err
	}

	rows := browser.CurrentPageData()
	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), i18n.T("attempts.none"))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tNEW\tTOTAL\tSTARTED\tUPDATED")
	for _, att := range rows {
		started := "-"
		if att.TimeStarted != nil {
			started = att.TimeStarted.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\n",
			att.ID, att.Status, att.NewDocsIndexed, att.TotalDocsIndexed,
			started, att.TimeUpdated.Format(time.RFC3339))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}

	printPageIndicator(cmd, browser.CurrentPage(), browser.TotalPages())
	return nil
}

func runAttemptErrors(cmd *cobra.Command, a *app, attemptID, page int) error {
	browser, err := console.NewErrorsBrowser(a.client, attemptID, a.pageOptions(), a.logger)
	if err != nil {
		return err
	}
	if err := browser.GoToPage(cmd.Context(), page); err != nil {
		return err
	}

	rows := browser.CurrentPageData()
	fmt.Fprintln(cmd.OutOrStdout(), i18n.Sprintf("errors.title", attemptID))
	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), i18n.T("errors.none"))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDOCUMENT\tRESOLVED\tMESSAGE")
	for _, e := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			e.ID, e.DocumentID, onOff(e.IsResolved), e.FailureMessage)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}

	printPageIndicator(cmd, browser.CurrentPage(), browser.TotalPages())
	if browser.TotalIsApproximate() {
		fmt.Fprintln(cmd.OutOrStdout(), i18n.T("errors.approx.total"))
	}
	return nil
}

func printPageIndicator(cmd *cobra.Command, page, totalPages int) {
	if totalPages > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), i18n.Sprintf("page.indicator", page+1, totalPages))
	}
}
