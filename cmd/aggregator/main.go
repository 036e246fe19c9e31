package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/polyquery/research-aggregator/pkg/config"
	"github.com/polyquery/research-aggregator/pkg/export"
	"github.com/polyquery/research-aggregator/pkg/merge"
	"github.com/polyquery/research-aggregator/pkg/platforms"
)

var (
	question  string
	outputDir string
)

func main() {
	// Setup structured logging
	handler := slog.NewTextHandler(os.Stderr, nil)
	slog.SetDefault(slog.New(handler))

	// Load .env file
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, as long as env vars are set
	}

	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "aggregator",
		Short: "Ask several AI platforms one question and merge the answers",
		Long:  `Aggregator sends a research question to every configured AI platform in parallel, deduplicates the answers sentence by sentence, and prints one attributed report.`,
		Run: func(cmd *cobra.Command, args []string) {

			// Check if question provided via flags
			questionFlagChanged := cmd.Flags().Changed("question")

			if !questionFlagChanged {
				// Interactive Mode
				reader := bufio.NewReader(os.Stdin)

				fmt.Print("Enter research question: ")
				input, _ := reader.ReadString('\n')
				question = strings.TrimSpace(input)
				if question == "" {
					slog.Error("Question cannot be empty")
					os.Exit(1)
				}
			} else {
				// Non-Interactive Mode (Flag provided)
				if question == "" {
					slog.Error("--question flag provided but empty")
					os.Exit(1)
				}
			}

			ctx := context.Background()

			plats, err := buildPlatforms(ctx, cfg)
			if err != nil {
				slog.Error("Failed to init platforms", "error", err)
				os.Exit(1)
			}

			slog.Info("Dispatching question", "question", question, "platforms", len(plats))

			dispatcher := platforms.NewDispatcher(plats, cfg.PlatformTimeout)
			documents := dispatcher.Dispatch(ctx, question)

			merger := merge.New(cfg.MergeConfig())
			result, err := merger.Merge(documents, uuid.New(), uuid.New())
			if err != nil {
				slog.Error("Merge failed", "error", err)
				os.Exit(1)
			}

			fmt.Println(result.MergedText)

			if outputDir != "" {
				path, err := export.New(outputDir).Write(result)
				if err != nil {
					slog.Error("Failed to export report", "error", err)
					os.Exit(1)
				}
				slog.Info("Report written", "path", path)
			}
		},
	}

	rootCmd.Flags().StringVarP(&question, "question", "q", "", "The research question")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory to write the report to as markdown")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}

// buildPlatforms creates one client per configured platform. A missing
// key skips that platform instead of failing the run.
func buildPlatforms(ctx context.Context, cfg *config.Config) ([]platforms.Platform, error) {
	var plats []platforms.Platform

	if cfg.OpenAIApiKey != "" {
		p, err := platforms.NewOpenAI(cfg.OpenAIModel, cfg.OpenAIApiKey)
		if err != nil {
			return nil, fmt.Errorf("openai: %w", err)
		}
		plats = append(plats, p)
	}
	if cfg.AnthropicApiKey != "" {
		p, err := platforms.NewAnthropic(cfg.AnthropicModel, cfg.AnthropicApiKey)
		if err != nil {
			return nil, fmt.Errorf("anthropic: %w", err)
		}
		plats = append(plats, p)
	}
	if cfg.GoogleApiKey != "" {
		p, err := platforms.NewGoogle(ctx, cfg.GoogleModel, cfg.GoogleApiKey)
		if err != nil {
			return nil, fmt.Errorf("google: %w", err)
		}
		plats = append(plats, p)
	}

	if len(plats) == 0 {
		return nil, fmt.Errorf("no platform API keys configured")
	}
	return plats, nil
}
