package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/golsh"
	"github.com/hupe1980/golsh/hashkey"
)

func newRunCmd() *cobra.Command {
	var (
		configPath  string
		format      string
		verbose     bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build indexes and measure recall@k",
		Example: `  lshbench run --tables 1,4,16 --bits 10
  lshbench run --config bench.yaml --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg)

			logger := golsh.NoopLogger()
			if verbose {
				logger = golsh.NewTextLogger(slog.LevelInfo)
			}

			var prom *PromMetrics
			if metricsAddr != "" {
				prom = NewPromMetrics()
				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()
				go func() {
					if err := prom.Serve(ctx, metricsAddr); err != nil {
						logger.Error("metrics server failed", "error", err)
					}
				}()
			}

			res, err := Run(cmd.Context(), cfg, logger, prom)
			if err != nil {
				return err
			}
			return writeRun(cmd.OutOrStdout(), res, format)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML config file")
	f.StringVar(&format, "format", "text", "output format: text or yaml")
	f.BoolVarP(&verbose, "verbose", "v", false, "log index operations to stderr")
	f.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the run")

	d := DefaultConfig()
	f.Int("dim", d.Dimension, "vector dimension")
	f.Int("points", d.Points, "number of indexed points")
	f.Int("queries", d.Queries, "number of queries")
	f.Int("k", d.K, "neighbors per query")
	f.IntSlice("tables", d.Tables, "table counts to evaluate")
	f.Int("bits", d.Bits, "bits per table")
	f.Int64("seed", d.Seed, "random seed for data and hyperplanes")
	f.String("distribution", d.Distribution, "hyperplane distribution: uniform or gaussian")
	f.Int("workers", d.Workers, "concurrent query workers")
	f.Float64("qps", d.QPS, "pace queries at this rate (0 = unpaced)")

	return cmd
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *Config) {
	f := cmd.Flags()
	if f.Changed("dim") {
		cfg.Dimension, _ = f.GetInt("dim")
	}
	if f.Changed("points") {
		cfg.Points, _ = f.GetInt("points")
	}
	if f.Changed("queries") {
		cfg.Queries, _ = f.GetInt("queries")
	}
	if f.Changed("k") {
		cfg.K, _ = f.GetInt("k")
	}
	if f.Changed("tables") {
		cfg.Tables, _ = f.GetIntSlice("tables")
	}
	if f.Changed("bits") {
		cfg.Bits, _ = f.GetInt("bits")
	}
	if f.Changed("seed") {
		cfg.Seed, _ = f.GetInt64("seed")
	}
	if f.Changed("distribution") {
		cfg.Distribution, _ = f.GetString("distribution")
	}
	if f.Changed("workers") {
		cfg.Workers, _ = f.GetInt("workers")
	}
	if f.Changed("qps") {
		cfg.QPS, _ = f.GetFloat64("qps")
	}
}

func writeRun(w io.Writer, res *RunResult, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(res)
	case "text", "":
		fmt.Fprintf(w, "run %s: %d points, %d queries, dim=%d, k=%d\n",
			res.RunID, res.Config.Points, res.Config.Queries, res.Config.Dimension, res.Config.K)
		fmt.Fprintf(w, "host %s/%s, %d cpus %v\n", res.Host.GOOS, res.Host.GOARCH, res.Host.NumCPU, res.Host.Features)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "L\tM\tRECALL\tEMPTY\tCANDIDATES\tLATENCY\tBUILD\tMEMORY\tMAX BUCKET")
		for _, r := range res.Reports {
			fmt.Fprintf(tw, "%d\t%d\t%.3f\t%d\t%.1f\t%s\t%s\t%d\t%d\n",
				r.Tables, r.Bits, r.Recall, r.EmptyQueries, r.MeanCandidates, r.MeanLatency, r.BuildTime, r.MemoryBytes, r.MaxBucket)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func newParamsCmd() *cobra.Command {
	var (
		tables []int
		bits   int
		angles []float64
	)

	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print collision probabilities for tables and bits",
		Long: `params prints, for each angle in degrees, the probability that two
vectors share a bucket in one table, (1-θ/π)^M, and in at least one of
L tables, 1-(1-p)^L.`,
		Example: `  lshbench params --bits 12 --tables 4,8,16 --angles 10,30,60`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeParams(cmd.OutOrStdout(), tables, bits, angles)
		},
	}

	f := cmd.Flags()
	f.IntSliceVar(&tables, "tables", []int{1, 4, 8, 16}, "table counts")
	f.IntVar(&bits, "bits", 12, "bits per table")
	f.Float64SliceVar(&angles, "angles", []float64{5, 15, 30, 45, 60, 90}, "angles in degrees")

	return cmd
}

func writeParams(w io.Writer, tables []int, bits int, angles []float64) error {
	if bits < 1 || bits > 64 {
		return fmt.Errorf("bits must be in [1, 64], got %d", bits)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "ANGLE\tP(TABLE)")
	for _, l := range tables {
		fmt.Fprintf(tw, "\tL=%d", l)
	}
	fmt.Fprintln(tw)

	for _, deg := range angles {
		theta := deg * math.Pi / 180
		fmt.Fprintf(tw, "%g\t%.4f", deg, hashkey.CollisionProbability(theta, bits))
		for _, l := range tables {
			fmt.Fprintf(tw, "\t%.4f", hashkey.RecallProbability(theta, l, bits))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
