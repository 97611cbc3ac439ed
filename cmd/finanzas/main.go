// finanzas builds financial statement analysis from ledger entries.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"

	"github.com/DJ03MT/FinanzasProyecto/api"
	"github.com/DJ03MT/FinanzasProyecto/internal/config"
	"github.com/DJ03MT/FinanzasProyecto/internal/engine"
	"github.com/DJ03MT/FinanzasProyecto/internal/importer"
	"github.com/DJ03MT/FinanzasProyecto/internal/infra"
	"github.com/DJ03MT/FinanzasProyecto/internal/ledger"
	"github.com/DJ03MT/FinanzasProyecto/internal/report"
	"github.com/DJ03MT/FinanzasProyecto/internal/service"
	"github.com/DJ03MT/FinanzasProyecto/internal/store"
	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger
var (
	cfg     *config.Config
	cfgFile string
	logger  zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "finanzas",
	Short: "Financial statement analysis from ledger entries",
	Long: `finanzas builds balance sheets and income statements from ledger entries
and derives vertical and horizontal analysis, financial ratios with DuPont
decomposition, indirect and direct cash flow, a proforma projection and a
written diagnosis.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}

		var err error
		cfgFile, _ = cmd.Flags().GetString("config")
		if cfgFile != "" {
			cfg, err = config.LoadFromFile(cfgFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.Logging.Level
		if lv, _ := cmd.Flags().GetString("log-level"); lv != "" {
			level = lv
		}
		logger, err = infra.NewLogger(level, cfg.Logging.Format, os.Stderr)
		if err != nil {
			return err
		}
		api.Version = version
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("finanzas %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE...",
	Short: "Analyze ledger entry files (JSON or CSV)",
	Long: `Analyze one or more ledger files. JSON files hold an array of entries or a
{"records": [...]} object; .csv files use the import format. Use "-" for stdin.

Examples:
  finanzas analyze ledger.json
  finanzas analyze --format text 2023.csv
  finanzas analyze --format yaml --out reports/ a.json b.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")
		if _, err := renderer(format); err != nil {
			return err
		}

		eng := engine.New(engine.Options{
			Currency:  cfg.Analysis.Currency,
			Tolerance: models.M(cfg.Analysis.Tolerance),
		})

		results := make([][]byte, len(args))
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(cfg.Analysis.Concurrency)
		for i, path := range args {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				data, err := analyzeFile(eng, path, format)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				results[i] = data
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			var ce *models.ClassificationError
			if errors.As(err, &ce) {
				p, _ := json.Marshal(models.ProblemFrom(ce))
				fmt.Fprintln(os.Stderr, string(p))
			}
			return err
		}

		return writeResults(args, results, out, format)
	},
}

func init() {
	analyzeCmd.Flags().String("format", "json", "output format: json, yaml, text or html")
	analyzeCmd.Flags().String("out", "", "output file, or directory when several inputs are given")
}

// --- Import Command ---

var importCmd = &cobra.Command{
	Use:   "import CSV",
	Short: "Convert a CSV export into JSON ledger entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		entries, err := readEntries(args[0])
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		logger.Info().Str("file", args[0]).Int("entries", len(entries)).Msg("csv imported")
		return writeOutput(out, append(data, '\n'))
	},
}

func init() {
	importCmd.Flags().String("out", "", "output file (default: stdout)")
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())

		st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			cancel()
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		eng := engine.New(engine.Options{
			Currency:  cfg.Analysis.Currency,
			Tolerance: models.M(cfg.Analysis.Tolerance),
		})
		analyzer := service.NewAnalyzer(eng, st, cfg.Analysis.CacheDuration())

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			analyzer.Cache().RunJanitor(ctx, cfg.Analysis.CacheDuration())
		}()
		defer wg.Wait()
		defer cancel()

		logger.Info().
			Str("store", cfg.Store.Driver).
			Str("currency", cfg.Analysis.Currency).
			Msg("starting finanzas API server")

		srv := api.NewServer(cfg, analyzer, logger)
		srv.SetConfigFile(cfgFile)
		return srv.ListenAndServe(ctx, cfg.API.Addr())
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  finanzas — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:       %s (%s)\n", version, commit)
		if cfgFile != "" {
			fmt.Printf("  Config file:   %s\n", cfgFile)
		}
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    Currency:      %s\n", cfg.Analysis.Currency)
		fmt.Printf("    Tolerance:     %g\n", cfg.Analysis.Tolerance)
		fmt.Printf("    Cache TTL:     %s\n", cfg.Analysis.CacheDuration())
		fmt.Printf("    Concurrency:   %d\n", cfg.Analysis.Concurrency)
		fmt.Printf("    Store:         %s\n", cfg.Store.Driver)
		fmt.Printf("    API Server:    %s\n", cfg.API.Addr())
		fmt.Printf("    Logging:       %s (%s)\n", cfg.Logging.Level, cfg.Logging.Format)
		fmt.Println()

		fmt.Println("  Secrets:")
		for _, k := range config.CheckSecrets(cfg) {
			status := "❌ not set"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-25s %s\n", k.Name+":", status)
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// ============================================================
// Helpers
// ============================================================

type renderFunc func(pkg *models.AnalysisPackage, source string) ([]byte, error)

func renderer(format string) (renderFunc, error) {
	switch strings.ToLower(format) {
	case "json":
		return func(pkg *models.AnalysisPackage, _ string) ([]byte, error) {
			data, err := json.MarshalIndent(pkg, "", "  ")
			return append(data, '\n'), err
		}, nil
	case "yaml":
		return func(pkg *models.AnalysisPackage, _ string) ([]byte, error) {
			return yaml.Marshal(pkg)
		}, nil
	case "text", "html":
		gen := report.GenerateText
		if strings.ToLower(format) == "html" {
			gen = report.GenerateHTML
		}
		return func(pkg *models.AnalysisPackage, source string) ([]byte, error) {
			rc := report.DefaultReportConfig()
			rc.Currency = cfg.Analysis.Currency
			rc.Source = source
			s, err := gen(pkg, rc)
			return []byte(s), err
		}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: want json, yaml, text or html", format)
	}
}

func analyzeFile(eng *engine.Engine, path, format string) ([]byte, error) {
	entries, err := readEntries(path)
	if err != nil {
		return nil, err
	}
	pkg, err := eng.Analyze(entries)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("file", path).
		Ints("years", pkg.Years).
		Int("warnings", len(pkg.Warnings)).
		Msg("file analyzed")

	render, err := renderer(format)
	if err != nil {
		return nil, err
	}
	return render(pkg, path)
}

func readEntries(path string) ([]models.LedgerEntry, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return importer.ParseCSV(r)
	}
	return ledger.DecodeEntries(r)
}

func writeResults(paths []string, results [][]byte, out, format string) error {
	if out == "" || len(paths) == 1 {
		for _, data := range results {
			if err := writeOutput(out, data); err != nil {
				return err
			}
		}
		return nil
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	ext := "." + strings.ToLower(format)
	if ext == ".text" {
		ext = ".txt"
	}
	for i, path := range paths {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if path == "-" {
			base = fmt.Sprintf("stdin-%d", i)
		}
		if err := os.WriteFile(filepath.Join(out, base+ext), results[i], 0o644); err != nil {
			return err
		}
	}
	return nil
}

func writeOutput(out string, data []byte) error {
	if out == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(out, data, 0o644)
}
