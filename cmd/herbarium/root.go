package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/appengine-ltd/virtual-herbarium/internal/catalog"
	"github.com/appengine-ltd/virtual-herbarium/internal/config"
	"github.com/appengine-ltd/virtual-herbarium/internal/loader"
	"github.com/appengine-ltd/virtual-herbarium/internal/logging"
	"github.com/appengine-ltd/virtual-herbarium/internal/metrics"
	"github.com/appengine-ltd/virtual-herbarium/internal/variant"
)

var rootCmd = &cobra.Command{
	Use:   "herbarium",
	Short: "A procedural 3D tour of a plant collection",
	Long: `herbarium loads a plant dataset, lays the plants out on a circle and grows a
procedural model for each one. Use "tour" for the interactive window, or
"snapshot" and "serve" where no display is available.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Override log.level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("dataset", "", "Override the dataset URL or path")
}

// env is what every command shares: validated config and the wired pipeline
// from loader to catalog store.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	variants *variant.Table
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	coord    *loader.Coordinator
}

func setup(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if ds, _ := cmd.Flags().GetString("dataset"); ds != "" {
		cfg.Dataset.URL, cfg.Dataset.Path = "", ds
		if loader.IsRemote(ds) {
			cfg.Dataset.URL, cfg.Dataset.Path = ds, ""
			cfg.Dataset.Watch = false
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level, cfg.Log.Format)
	slog.SetDefault(logger)

	variants, err := cfg.VariantTable()
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	src := loader.SourceFor(cfg.DatasetLocation(), cfg.Dataset.Timeout)
	l := loader.New(src, logger, m)
	coord := loader.NewCoordinator(l, catalog.NewStore(), logger, m)

	logger.Debug("herbarium configured", "dataset", src.String(), "variants", variants.Keys())
	return &env{
		cfg:      cfg,
		logger:   logger,
		variants: variants,
		registry: reg,
		metrics:  m,
		coord:    coord,
	}, nil
}

// watcher returns nil when the dataset is not a watched local file.
func (e *env) watcher() (*loader.Watcher, error) {
	if !e.cfg.Dataset.Watch || e.cfg.Dataset.URL != "" {
		return nil, nil
	}
	return loader.NewWatcher(e.cfg.Dataset.Path, e.cfg.Dataset.Debounce, e.logger)
}
