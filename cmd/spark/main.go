package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bamsammich/spark/indexer"
	"github.com/bamsammich/spark/internal/config"
	"github.com/bamsammich/spark/internal/input"
	"github.com/bamsammich/spark/internal/ui"
	"github.com/bamsammich/spark/sparkline"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// strategyFlag is a pflag.Value that validates the indexer strategy name
// while flags are parsed.
type strategyFlag struct {
	s indexer.Strategy
}

var _ pflag.Value = (*strategyFlag)(nil)

func (f *strategyFlag) String() string { return f.s.String() }
func (*strategyFlag) Type() string     { return "strategy" }

func (f *strategyFlag) Set(val string) error {
	s, err := indexer.ParseStrategy(val)
	if err != nil {
		return err
	}
	f.s = s
	return nil
}

// options collects everything the root command resolves from flags and
// the config file before rendering.
type options struct {
	ramp       string
	strategy   strategyFlag
	min, max   float64
	fixed      bool
	width      int
	fit        bool
	verbose    bool
	quiet      bool
	logFile    string
	configFile string
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		opts        options
		showVersion bool
	)

	rootCmd := &cobra.Command{
		Use:   "spark [flags] [numbers...]",
		Short: "Render numbers as a one-line sparkline ▁▂▃▄▅▆▇█",
		Long: `spark renders a series of numbers as a single line of block glyphs.

Numbers are taken from the arguments, or read from stdin when there are none.
They may be separated by whitespace or commas. Tokens that are not numbers,
and NaN, are skipped.`,
		Example: `  spark 1 5 22 13 53
  seq 0 16 | spark
  spark --min 0 --max 100 --strategy range-table 12,40,97
  spark -- -3 -1 0 2`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "spark %s\n", version)
				return nil
			}

			closeLog, err := setupLogging(opts)
			if err != nil {
				return err
			}
			defer closeLog()

			// The default config file is optional; one named with --config is not.
			var cfg config.Config
			if opts.configFile != "" {
				cfg, err = config.LoadFile(opts.configFile)
				if err != nil {
					return err
				}
			} else if cfg, err = config.Load(); err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			opts.fixed = cmd.Flags().Changed("min")
			if err := applyConfigDefaults(cmd, cfg.Defaults, &opts); err != nil {
				return err
			}

			rd, err := newRenderer(opts)
			if err != nil {
				return err
			}

			res, err := readSamples(cmd, args)
			if err != nil {
				slog.Error("read samples failed", "error", err)
				return &exitError{code: 1}
			}
			if len(res.Skipped) > 0 {
				slog.Info("skipped non-numeric input", "count", len(res.Skipped), "tokens", res.Skipped)
			}

			width := opts.width
			if opts.fit && width <= 0 {
				if f, ok := cmd.OutOrStdout().(*os.File); ok {
					width = ui.FitWidth(f.Fd(), symbolCells(rd.Ramp()))
				}
			}
			samples := input.Tail(res.Samples, width)

			lo, hi, fixed := rd.FixedRange()
			if !fixed {
				lo, hi, _ = sparkline.Bounds(samples)
			}
			slog.Debug("rendering",
				"strategy", rd.Strategy().String(),
				"min", lo,
				"max", hi,
				"fixed", fixed,
				"samples", len(samples),
			)

			fmt.Fprintln(cmd.OutOrStdout(), rd.Render(samples))
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVar(&showVersion, "version", false, "print version and exit")
	flags.StringVar(&opts.ramp, "ramp", sparkline.DefaultTicks, "symbols from lowest to highest")
	flags.Var(&opts.strategy, "strategy", "value to symbol mapping: algorithmic or range-table")
	flags.Float64Var(&opts.min, "min", 0, "fixed lower bound (requires --max)")
	flags.Float64Var(&opts.max, "max", 0, "fixed upper bound (requires --min)")
	flags.IntVarP(&opts.width, "width", "w", 0, "render only the last N samples (0: all)")
	flags.BoolVar(&opts.fit, "fit", false, "limit output to the terminal width")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress all output except errors")
	flags.StringVar(&opts.logFile, "log", "", "write structured JSON log to FILE")
	flags.StringVar(&opts.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/spark/config.toml)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	rootCmd.MarkFlagsRequiredTogether("min", "max")
	flags.SortFlags = false

	rootCmd.AddCommand(newDocsCmd())
	return rootCmd
}

// setupLogging installs the default slog logger and returns a func that
// closes the log file, if any.
func setupLogging(opts options) (func(), error) {
	logLevel := slog.LevelInfo
	if opts.verbose {
		logLevel = slog.LevelDebug
	} else if opts.quiet {
		logLevel = slog.LevelWarn
	}
	textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	var logHandler slog.Handler = textHandler
	closer := func() {}
	if opts.logFile != "" {
		lf, err := os.Create(opts.logFile)
		if err != nil {
			return closer, fmt.Errorf("open log file: %w", err)
		}
		closer = func() { lf.Close() }
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
	}
	slog.SetDefault(slog.New(logHandler))
	return closer, nil
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(cmd *cobra.Command, defaults config.DefaultsConfig, opts *options) error {
	flags := cmd.Flags()
	if !flags.Changed("ramp") && defaults.Ramp != nil {
		opts.ramp = *defaults.Ramp
	}
	if !flags.Changed("strategy") && defaults.Strategy != nil {
		if err := opts.strategy.Set(*defaults.Strategy); err != nil {
			return fmt.Errorf("config strategy: %w", err)
		}
	}
	if !flags.Changed("width") && defaults.Width != nil {
		opts.width = *defaults.Width
	}
	// A configured range only applies when neither bound is on the command line.
	if !flags.Changed("min") && !flags.Changed("max") {
		if (defaults.Min == nil) != (defaults.Max == nil) {
			return errors.New("config must set both min and max, or neither")
		}
		if defaults.Min != nil {
			opts.min, opts.max = *defaults.Min, *defaults.Max
			opts.fixed = true
		}
	}
	return nil
}

func newRenderer(opts options) (*sparkline.Renderer, error) {
	rendererOpts := []sparkline.Option{
		sparkline.WithRamp(sparkline.ParseRamp(opts.ramp)),
		sparkline.WithStrategy(opts.strategy.s),
	}
	if opts.fixed {
		rendererOpts = append(rendererOpts, sparkline.WithRange(opts.min, opts.max))
	}
	rd, err := sparkline.New(rendererOpts...)
	if err != nil {
		return nil, fmt.Errorf("invalid renderer options: %w", err)
	}
	return rd, nil
}

func readSamples(cmd *cobra.Command, args []string) (input.Result, error) {
	if len(args) > 0 {
		return input.ParseArgs(args), nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && ui.IsTTY(f.Fd()) {
		return input.Result{}, errors.New("no numbers given: pass them as arguments or on stdin")
	}
	return input.Parse(in)
}

// symbolCells returns the widest display width among the ramp's symbols.
func symbolCells(r sparkline.Ramp) int {
	cells := 1
	for _, s := range r {
		cells = max(cells, uniseg.StringWidth(s))
	}
	return cells
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
