// Package main provides the presencas binary entry point.
// It converts Presenças dataset records to DCAT graphs and back.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/geoknoesis/presencas-dcat/config"
	"github.com/geoknoesis/presencas-dcat/profile"
)

const (
	// Version is the presencas release reported by the version command.
	Version = "0.1.0"
	appName = "presencas"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

// globals holds the flags shared by every subcommand.
type globals struct {
	configPath  string
	logLevel    string
	baseURI     string
	showMetrics bool
}

func rootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Presenças DCAT-AP 3 profile",
		Long: `presencas maps Presenças dataset records to DCAT-AP 3 graphs and back.

- parse reads a graph and prints the dataset record extracted from it
- serialize writes the graph describing a dataset record`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.baseURI, "base-uri", "", "Site URL dataset and resource IRIs are derived from")
	cmd.PersistentFlags().BoolVar(&g.showMetrics, "metrics", false, "Print stage metrics to stderr")

	cmd.AddCommand(parseCmd(g), serializeCmd(g))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (profile %s)\n", appName, Version, profile.Name)
		},
	})

	return cmd
}

// env is the configured runtime of one command invocation.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	pipeline *profile.Pipeline
	stderr   io.Writer
	metrics  bool
}

// setup loads configuration, applies flag overrides and builds the pipeline.
func (g *globals) setup(cmd *cobra.Command) (*env, error) {
	cfg := config.DefaultConfig()
	if g.configPath != "" {
		loaded, err := config.LoadFromFile(g.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	cfg.Merge(&config.Config{
		Profile: config.ProfileConfig{BaseURI: g.baseURI},
		Log:     config.LogConfig{Level: g.logLevel},
	})
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	stderr := cmd.ErrOrStderr()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	registry := prometheus.NewRegistry()
	metrics, err := profile.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	stage := profile.New(append(cfg.Profile.Options(), profile.WithLogger(logger))...)
	pipeline := profile.NewPipeline([]profile.Stage{coreStage{baseURI: cfg.Profile.BaseURI}, stage},
		profile.WithPipelineLogger(logger),
		profile.WithMetrics(metrics),
	)

	return &env{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		pipeline: pipeline,
		stderr:   stderr,
		metrics:  g.showMetrics,
	}, nil
}

// warn prints a highlighted warning line to stderr.
func (e *env) warn(format string, args ...any) {
	fmt.Fprintf(e.stderr, "%s %s\n", color.YellowString("warning:"), fmt.Sprintf(format, args...))
}
