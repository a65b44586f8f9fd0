package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/tidemark-labs/lingo-core/internal/adapters/driven/pofile"
	"github.com/tidemark-labs/lingo-core/internal/adapters/driven/processor"
	"github.com/tidemark-labs/lingo-core/internal/adapters/driven/rediscache"
	"github.com/tidemark-labs/lingo-core/internal/adapters/driven/sqldb"
	"github.com/tidemark-labs/lingo-core/internal/config"
	"github.com/tidemark-labs/lingo-core/internal/core/ports/driven"
	"github.com/tidemark-labs/lingo-core/internal/core/ports/driving"
	"github.com/tidemark-labs/lingo-core/internal/core/services"
	"github.com/tidemark-labs/lingo-core/internal/worker"
)

var version = "dev"

var (
	flagLanguage  string
	flagCatalog   string
	flagResetSeed bool
	flagInplace   bool
	flagJSON      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lingo-core",
		Short: "Incremental structured-document processor",
		Long: `lingo-core segments markdown documents into stable translation units,
tracks them in gettext catalogs, and reprocesses only what changed
between runs.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flagLanguage, "language", "l", "", "Target language tag (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output as JSON")

	rootCmd.AddCommand(versionCmd(), processCmd(), batchCmd(), statsCmd(), reportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			if flagJSON {
				printJSON(map[string]string{"version": version})
				return
			}
			fmt.Printf("lingo-core %s\n", version)
		},
	}
}

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <source> <target>",
		Short: "Process one document incrementally",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			rt, err := setup(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			catalogPath := flagCatalog
			if catalogPath == "" {
				catalogPath = defaultCatalogPath(args[0])
			}

			result, err := rt.pipeline.ProcessDocument(ctx, driving.ProcessRequest{
				SourcePath:  args[0],
				TargetPath:  args[1],
				CatalogPath: catalogPath,
				ResetSeed:   flagResetSeed,
				Inplace:     flagInplace,
			})
			if err != nil {
				return err
			}

			if flagJSON {
				printJSON(result)
				return nil
			}
			fmt.Printf("%s: %d blocks, %d processed, %d failed, %d skipped, %.1f%% coverage\n",
				args[0], result.Blocks, result.Stats.Complete, result.Stats.Failed,
				result.Stats.Skipped, result.Coverage.Percentage)
			return nil
		},
	}
	cmd.Flags().StringVarP(&flagCatalog, "catalog", "c", "", "Catalog path (default: source with .po extension)")
	cmd.Flags().BoolVar(&flagResetSeed, "reset-seed", false, "Discard the catalog and reseed it from the source")
	cmd.Flags().BoolVar(&flagInplace, "inplace", false, "Reseed the catalog from the rebuilt output")
	return cmd
}

func batchCmd() *cobra.Command {
	var catalogDir string
	cmd := &cobra.Command{
		Use:   "batch <source-dir> <target-dir>",
		Short: "Process every matching document under a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			rt, err := setup(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			if catalogDir == "" {
				catalogDir = args[0]
			}

			w := worker.NewWorker(worker.WorkerConfig{
				Service:     rt.pipeline,
				Concurrency: rt.cfg.Concurrency,
				Pattern:     rt.cfg.Pattern,
				Logger:      rt.logger,
			})

			result, err := w.ProcessDir(ctx, args[0], args[1], catalogDir, flagResetSeed, flagInplace)
			if err != nil {
				return err
			}

			if flagJSON {
				printJSON(result)
			} else {
				fmt.Printf("%s: %d processed, %d failed, %d skipped\n",
					args[0], result.FilesDone, result.FilesFailed, result.FilesSkipped)
			}
			if result.FilesFailed > 0 {
				return fmt.Errorf("%d of %d files failed", result.FilesFailed, result.FilesFailed+result.FilesDone)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&catalogDir, "catalog-dir", "c", "", "Catalog directory (default: source directory)")
	cmd.Flags().BoolVar(&flagResetSeed, "reset-seed", false, "Discard catalogs and reseed them from sources")
	cmd.Flags().BoolVar(&flagInplace, "inplace", false, "Reseed catalogs from rebuilt output")
	return cmd
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <source>",
		Short: "Show catalog statistics without processing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			rt, err := setup(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			catalogPath := flagCatalog
			if catalogPath == "" {
				catalogPath = defaultCatalogPath(args[0])
			}

			stats, coverage, err := rt.pipeline.Stats(ctx, args[0], catalogPath)
			if err != nil {
				return err
			}

			if flagJSON {
				printJSON(map[string]any{"catalog": stats, "coverage": coverage})
				return nil
			}
			fmt.Printf("units: %d total, %d complete, %d new, %d stale, %d obsolete\n",
				stats.Total, stats.Complete, stats.PendingNew, stats.PendingStale, stats.Obsolete)
			fmt.Printf("coverage: %.1f%% (%d/%d translatable)\n",
				coverage.Percentage, coverage.Complete, coverage.Translatable)
			return nil
		},
	}
	cmd.Flags().StringVarP(&flagCatalog, "catalog", "c", "", "Catalog path (default: source with .po extension)")
	return cmd
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <source>",
		Short: "Render a coverage report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			rt, err := setup(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			catalogPath := flagCatalog
			if catalogPath == "" {
				catalogPath = defaultCatalogPath(args[0])
			}

			report, err := rt.pipeline.Report(ctx, args[0], catalogPath)
			if err != nil {
				return err
			}
			fmt.Print(report)
			return nil
		},
	}
	cmd.Flags().StringVarP(&flagCatalog, "catalog", "c", "", "Catalog path (default: source with .po extension)")
	return cmd
}

// runtime bundles the wired pipeline and everything that needs closing.
type cliRuntime struct {
	cfg      *config.Config
	logger   *slog.Logger
	pipeline *services.Pipeline
	memory   driven.MemoryStore
	redis    *redis.Client
}

func (r *cliRuntime) close() {
	if r.memory != nil {
		if err := r.memory.Close(); err != nil {
			r.logger.Warn("failed to close translation memory", "error", err)
		}
	}
	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			r.logger.Warn("failed to close redis client", "error", err)
		}
	}
}

// setup loads configuration and wires the pipeline with whatever optional
// backends the configuration enables.
func setup(ctx context.Context) (*cliRuntime, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	if flagLanguage != "" {
		cfg.Language = flagLanguage
	}

	logger := newLogger(cfg.LogLevel)
	rt := &cliRuntime{cfg: cfg, logger: logger}

	var cache driven.ResultCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		rt.redis = redis.NewClient(opts)
		if err := rt.redis.Ping(ctx).Err(); err != nil {
			logger.Warn("result cache unreachable, continuing without it", "error", err)
			rt.redis.Close()
			rt.redis = nil
		} else {
			cache = rediscache.NewCache(rt.redis, time.Duration(cfg.CacheTTL))
		}
	}

	var memory driven.MemoryStore
	if cfg.DatabaseDSN != "" {
		store, err := sqldb.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			logger.Warn("translation memory unavailable, continuing without it", "error", err)
		} else {
			memory = store
			rt.memory = store
		}
	}

	rt.pipeline = services.NewPipeline(services.PipelineConfig{
		CatalogStore: pofile.NewStore(),
		Processor:    processor.NewStatic(processor.StaticConfig{Language: cfg.Language}),
		Cache:        cache,
		Memory:       memory,
		Language:     cfg.Language,
		MaxRefs:      cfg.MaxRefs,
		MemorySeed:   cfg.MemorySeed,
		Logger:       logger,
	})

	return rt, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func defaultCatalogPath(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	return strings.TrimSuffix(sourcePath, ext) + ".po"
}

func printJSON(v any) {
	if err := json.NewEncoder(os.Stdout).Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
