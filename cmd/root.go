// Package cmd wires the console's command tree: configuration loading,
// backend client construction, and the cobra commands for each admin
// workflow.
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/koopa0/scout/internal/backend"
	"github.com/koopa0/scout/internal/config"
	"github.com/koopa0/scout/internal/i18n"
	"github.com/koopa0/scout/internal/log"
	"github.com/koopa0/scout/internal/observability"
	"github.com/koopa0/scout/internal/pagecache"
)

// app carries the shared dependencies of every command.
type app struct {
	cfg    *config.Config
	client *backend.Client
	logger log.Logger
}

// pageOptions returns the pagination geometry for list views.
func (a *app) pageOptions() pagecache.Options {
	return pagecache.Options{
		ItemsPerPage:  a.cfg.ItemsPerPage,
		PagesPerBatch: a.cfg.PagesPerBatch,
	}
}

// debounceInterval returns the save-on-type quiet interval.
func (a *app) debounceInterval() time.Duration {
	return time.Duration(a.cfg.DebounceMillis) * time.Millisecond
}

// Execute loads configuration, builds the command tree, and runs it.
func Execute() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	i18n.Init(cfg.Language)

	// Interactive output is the product; logs stay out of the way unless
	// something is actually wrong.
	logger := log.New(log.Config{Level: slog.LevelWarn})

	client, err := backend.New(backend.Config{
		BaseURL:           cfg.ServerURL,
		APIToken:          cfg.APIToken,
		Timeout:           time.Duration(cfg.TimeoutSeconds) * time.Second,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.RequestBurst,
	}, logger)
	if err != nil {
		return fmt.Errorf("creating backend client: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		shutdown, err := observability.Setup(ctx, observability.Config{
			AgentHost:   cfg.Tracing.AgentHost,
			Environment: cfg.Tracing.Environment,
			ServiceName: cfg.Tracing.ServiceName,
		})
		if err != nil {
			return fmt.Errorf("setting up tracing: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				logger.Warn("trace shutdown failed", "error", err)
			}
		}()
	}

	a := &app{cfg: cfg, client: client, logger: logger}

	root := newRootCmd(a)
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "scout",
		Short:         i18n.T("app.description"),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newAttemptsCmd(a))
	root.AddCommand(newEntitiesCmd(a))
	root.AddCommand(newChannelsCmd(a))
	root.AddCommand(newGuildsCmd(a))
	root.AddCommand(newBotCmd(a))
	root.AddCommand(newFilesCmd(a))
	root.AddCommand(newAssistantCmd(a))
	root.AddCommand(newEmbeddingCmd(a))
	root.AddCommand(newPrefsCmd(a))
	root.AddCommand(newBrowseCmd(a))

	return root
}

// confirm prints the prompt and reads one line from stdin. Only the exact
// answer "yes" confirms.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == "yes"
}

// onOff renders a boolean as a short status word for table output.
func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
