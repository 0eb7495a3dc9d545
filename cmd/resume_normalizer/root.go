package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-normalizer/internal/config"
	"github.com/jonathan/resume-normalizer/internal/llm"
	"github.com/jonathan/resume-normalizer/internal/logging"
	"github.com/jonathan/resume-normalizer/internal/observability"
	"github.com/jonathan/resume-normalizer/internal/pipeline"
	"github.com/jonathan/resume-normalizer/internal/sanitize"
	"github.com/jonathan/resume-normalizer/internal/store"
	"github.com/jonathan/resume-normalizer/internal/tailor"
)

// app holds state shared by every subcommand once the persistent flags and
// config have been resolved.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "resume_normalizer",
		Short: "Resume data normalization pipeline",
		Long: "resume_normalizer validates, sanitizes and classifies resume documents and " +
			"reconciles AI-tailored content into the shape the renderer expects.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to JSON config file")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, disabled")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format: console or json")

	root.AddCommand(
		newNormalizeCmd(a),
		newReconcileCmd(a),
		newCleanCmd(a),
		newExtractCmd(a),
		newTailorCmd(a),
		newServeCmd(a),
		newValidateCmd(a),
	)
	return root
}

// setup loads config (file, env, defaults) and applies flag overrides.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	return nil
}

func (a *app) bullets() sanitize.BulletSet {
	return sanitize.DefaultBullets().With(a.cfg.BulletGlyphs()...)
}

func (a *app) pipelineOptions() pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.Bullets = a.bullets()
	opts.Logger = a.logger
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		a.logger.Debug().Str("stage", event.Stage).Msg(event.Message)
	}
	return opts
}

// newTailorer builds the configured tailoring client. The returned func
// releases it.
func (a *app) newTailorer(ctx context.Context) (tailor.Tailorer, func(), error) {
	switch a.cfg.Provider {
	case config.ProviderGemini:
		llmCfg := llm.DefaultConfig()
		if a.cfg.GeminiModel != "" {
			llmCfg = llmCfg.WithModel(llm.TierStandard, a.cfg.GeminiModel)
		}
		client, err := llm.NewGeminiClient(ctx, llmCfg, a.cfg.GeminiAPIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return tailor.NewGeminiTailorer(client), func() { _ = client.Close() }, nil
	default:
		return tailor.NewHTTPClient(a.cfg.TailorEndpoint), func() {}, nil
	}
}

// newStore returns the Postgres store when a database URL is configured and
// the in-memory store otherwise.
func (a *app) newStore(ctx context.Context) (store.KV, func(), error) {
	if a.cfg.DatabaseURL == "" {
		return store.NewMemoryStore(), func() {}, nil
	}
	pg, err := store.ConnectPostgres(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to store: %w", err)
	}
	return pg, pg.Close, nil
}

func (a *app) reportWarnings(result *pipeline.Result) {
	for _, w := range result.Warnings {
		a.logger.Warn().Msg(w)
	}
	if n := len(result.Rejections); n > 0 {
		a.logger.Info().Int("rejections", n).Msg("some fragments were dropped or defaulted")
	}
}

// printSummary writes boxed summaries of result to stderr.
func printSummary(cmd *cobra.Command, result *pipeline.Result) {
	printer := observability.NewPrinter(cmd.ErrOrStderr())
	printer.PrintDocument(result.Document)
	printer.PrintSkills(&result.Skills)
	printer.PrintTailored(result.Tailored)
	printer.PrintIssues(result.Rejections, result.Warnings)
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// writeJSON writes v indented to outPath, or to stdout when outPath is empty.
func writeJSON(cmd *cobra.Command, outPath string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return writeOutput(cmd, outPath, data)
}

func writeOutput(cmd *cobra.Command, outPath string, data []byte) error {
	if outPath == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
