package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TSGCFO/functions-openai/internal/chat"
	"github.com/TSGCFO/functions-openai/internal/config"
	"github.com/TSGCFO/functions-openai/internal/graph"
	"github.com/TSGCFO/functions-openai/internal/instrumentation"
	"github.com/TSGCFO/functions-openai/internal/logging"
	"github.com/TSGCFO/functions-openai/internal/model"
	"github.com/TSGCFO/functions-openai/internal/tools"
)

func newChatCmd() *cobra.Command {
	var (
		debug         bool
		configFile    string
		modelName     string
		maxIterations int
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive mailbox conversation",
		Long: `Start an interactive session. Each line you type is handed to the model
together with the mailbox tool catalog; the assistant calls Microsoft Graph
as needed and replies in plain language. Type "exit" or "quit" (or press
Ctrl-D) to leave.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Setup(debug)

			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if modelName != "" {
				cfg.Model = modelName
			}
			if maxIterations > 0 {
				cfg.MaxIterations = maxIterations
			}

			ctx := context.Background()

			instrConfig := instrumentation.DefaultConfig()
			instrConfig.Enabled = cfg.MetricsEnabled
			instrConfig.ServiceVersion = version
			provider, err := instrumentation.NewProvider(ctx, instrConfig)
			if err != nil {
				return fmt.Errorf("failed to create instrumentation provider: %w", err)
			}
			defer func() {
				if err := provider.Shutdown(context.Background()); err != nil {
					logger.Error("failed to shut down instrumentation", logging.Err(err))
				}
			}()

			graphClient, err := graph.NewClient(ctx, graph.Config{
				TenantID:     cfg.TenantID,
				ClientID:     cfg.ClientID,
				ClientSecret: cfg.ClientSecret,
				Scope:        cfg.GraphScope,
				BaseURL:      cfg.GraphBaseURL,
			})
			if err != nil {
				return fmt.Errorf("failed to create Graph client: %w", err)
			}

			modelClient, err := model.New(model.Config{
				APIKey:       cfg.OpenAIAPIKey,
				BaseURL:      cfg.OpenAIBaseURL,
				Model:        cfg.Model,
				SystemPrompt: cfg.SystemPrompt,
			})
			if err != nil {
				return fmt.Errorf("failed to create model client: %w", err)
			}

			registry := tools.NewMailboxRegistry(graphClient, cfg.MailboxUserID)
			orchestrator := chat.New(modelClient, registry, chat.Config{
				MaxIterations: cfg.MaxIterations,
				Logger:        logger,
				Metrics:       provider.Metrics(),
			})

			logger.Info("assistant ready",
				slog.String("model", cfg.Model),
				logging.UserHash(cfg.MailboxUserID))

			return runREPL(ctx, orchestrator, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&configFile, "config", "", "Path to a config file (environment variables take precedence)")
	cmd.Flags().StringVar(&modelName, "model", "", "Model name (overrides OPENAI_MODEL)")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "Maximum model calls per exchange (overrides ASSISTANT_MAX_ITERATIONS)")

	return cmd
}

// runREPL reads user messages line by line and prints assistant replies.
// A failed exchange is reported and the session continues; the
// conversation keeps everything recorded before the failure.
func runREPL(ctx context.Context, orchestrator *chat.Orchestrator, in io.Reader, out io.Writer) error {
	conv := chat.NewConversation()
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		answer, err := orchestrator.RunTurn(ctx, conv, line)
		if err != nil {
			switch {
			case errors.Is(err, chat.ErrMaxIterations):
				fmt.Fprintln(out, "Assistant: I could not finish that request within the allowed number of steps. Please try rephrasing or splitting it up.")
			default:
				fmt.Fprintf(out, "Assistant: something went wrong talking to the model endpoint: %v\n", err)
			}
			continue
		}

		fmt.Fprintf(out, "Assistant: %s\n", answer)
	}
}
