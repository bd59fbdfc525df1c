// Command metallab computes Al-O deoxidation curves and fits Gumbel extreme
// value distributions to inclusion measurements.
//
//	metallab [-config metallab.toml] deox
//	metallab [-config metallab.toml] gumbel
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/alexshd/metallab"
	"github.com/alexshd/metallab/internal/config"
	"github.com/alexshd/metallab/internal/dataset"
	"github.com/alexshd/metallab/internal/render"
	"github.com/alexshd/metallab/internal/report"
)

func main() {
	_ = godotenv.Load() // .env is optional

	configPath := flag.String("config", os.Getenv("METALLAB_CONFIG"), "path to TOML config (defaults built in)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config file] deox|gumbel\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if lvl := os.Getenv("METALLAB_LOG_LEVEL"); lvl != "" {
		cfg.Log.Level = lvl
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      parseLevel(cfg.Log.Level),
			TimeFormat: "15:04:05",
		}),
	))

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	switch cmd := flag.Arg(0); cmd {
	case "deox":
		err = runDeox(cfg)
	case "gumbel":
		err = runGumbel(cfg)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func runDeox(cfg *config.Config) error {
	start := time.Now()

	grid, err := cfg.Grid()
	if err != nil {
		return err
	}

	var obs []dataset.Observation
	if path := cfg.Deoxidation.Experimental; path != "" {
		obs, err = dataset.LoadObservations(path)
		if err != nil {
			return err
		}
		slog.Info("loaded observations", "path", path, "rows", len(obs), "sources", len(dataset.Sources(obs)))
	}

	sys := metallab.LiteratureAlO()
	curves := make([]metallab.Curve, 0, len(cfg.Deoxidation.Orders))
	for _, o := range cfg.Deoxidation.Orders {
		order := metallab.Order(o)
		points, err := sys.Sweep(grid, cfg.SweepParams(order))
		if err != nil {
			return fmt.Errorf("%s: %w", order.Label(), err)
		}
		c := metallab.Curve{Order: order, Label: order.Label(), Points: points}
		curves = append(curves, c)

		slog.Info("curve computed", "order", o, "points", len(points), "undefined", c.Undefined())
	}

	doc := report.NewDeoxReport(cfg.SweepParams(metallab.OrderIdeal), curves, obs)
	if err := writeReport(cfg, "deox", doc); err != nil {
		return err
	}

	if cfg.Output.Plots {
		path := filepath.Join(cfg.Output.Dir, "deox.png")
		if err := render.DeoxPlot(curves, obs, path); err != nil {
			return err
		}
		slog.Info("plot written", "path", path)
	}

	slog.Debug("deox finished", "id", doc.ID, "elapsed", time.Since(start))
	return nil
}

func runGumbel(cfg *config.Config) error {
	ms := dataset.E2283Example()
	if path := cfg.Gumbel.Samples; path != "" {
		var err error
		ms, err = dataset.LoadMeasurements(path)
		if err != nil {
			return err
		}
		slog.Info("loaded measurements", "path", path, "n", len(ms))
	} else {
		slog.Info("using ASTM E2283 example sample", "n", len(ms))
	}

	fit, err := metallab.FitGumbel(dataset.Values(ms), cfg.Gumbel.Estimator)
	if err != nil {
		return err
	}
	slog.Info("gumbel fit",
		"method", fit.Method,
		"lambda", fmt.Sprintf("%.4f", fit.Parameters.Location),
		"delta", fmt.Sprintf("%.4f", fit.Parameters.Scale),
		"logL", fmt.Sprintf("%.4f", fit.LogLikelihood))

	var pred *metallab.ExtremePrediction
	if T := cfg.Gumbel.ReturnPeriod; T > 0 {
		p, err := fit.Parameters.PredictExtreme(T, fit.N)
		if err != nil {
			return err
		}
		pred = &p
		slog.Info("extreme prediction",
			"returnPeriod", T,
			"size", fmt.Sprintf("%.2f", p.Value),
			"ci", fmt.Sprintf("[%.2f, %.2f]", p.Lower, p.Upper))
	}

	if err := writeReport(cfg, "gumbel", report.NewGumbelReport(fit, pred)); err != nil {
		return err
	}

	if cfg.Output.Plots {
		path := filepath.Join(cfg.Output.Dir, "gumbel.png")
		if err := render.GumbelPlot(fit, path); err != nil {
			return err
		}
		slog.Info("plot written", "path", path)
	}
	return nil
}

// writeReport writes to stdout when no output directory is set, otherwise to
// <dir>/<name>.<ext>.
func writeReport(cfg *config.Config, name string, v any) error {
	if cfg.Output.Dir == "" || cfg.Output.Dir == "-" {
		if err := report.Encode(os.Stdout, cfg.Output.Format, v); err != nil {
			return fmt.Errorf("%s report: %w", name, err)
		}
		return nil
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Join(cfg.Output.Dir, name+report.Extension(cfg.Output.Format))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	if err := report.Encode(f, cfg.Output.Format, v); err != nil {
		f.Close()
		return fmt.Errorf("%s report: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report '%s': %w", path, err)
	}
	slog.Info("report written", "path", path)
	return nil
}
