// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package actfplot implements the commands that chart activation
// function benchmark logs.
//
// A command runs in three steps. Load parses the log files into runs,
// Render turns the runs into figures and a comparison report, and
// Show writes the figures to a publish.Sink. Main wires the steps to
// command-line flags.
package actfplot

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/NNVMC/FeedForwardNeuralNetwork/actfchart"
	"github.com/NNVMC/FeedForwardNeuralNetwork/actfmt"
	"github.com/NNVMC/FeedForwardNeuralNetwork/actfstat"
	"github.com/NNVMC/FeedForwardNeuralNetwork/internal/publish"
	"github.com/NNVMC/FeedForwardNeuralNetwork/storage/db"
	_ "github.com/NNVMC/FeedForwardNeuralNetwork/storage/db/sqlite3"
	_ "github.com/go-sql-driver/mysql"
)

// A Variant describes one benchmark family and the defaults of its
// command.
type Variant struct {
	// Name is the command name, used as message prefix.
	Name   string
	Format *actfmt.Format

	// Functions is the default -actf list.
	Functions string

	// Reference is the default -ref function.
	Reference string

	// IncludeBaseline draws the baseline in the comparison chart.
	IncludeBaseline bool
}

var (
	FFProp = &Variant{
		Name:      "ffpropplot",
		Format:    actfmt.FFPropagate,
		Functions: "TANS,GSS,RELU",
		Reference: "LGS",
	}
	Derivs = &Variant{
		Name:            "derivplot",
		Format:          actfmt.ActfDerivs,
		Functions:       "tans,gss,relu",
		Reference:       "lgs",
		IncludeBaseline: true,
	}
)

// ErrUsage is returned by Main for invalid command lines. The usage
// message has already been printed.
var ErrUsage = errors.New("usage error")

// Config holds the settings of one command invocation.
type Config struct {
	OutDir    string
	Format    string
	Functions []string
	Reference string
	Table     string
	Commit    actfmt.CommitPolicy

	// DB is "driver:dsn", or empty to skip archiving.
	DB       string
	Baseline string

	// GCS is "bucket[/prefix]". If set, charts go to Cloud Storage
	// instead of OutDir.
	GCS            string
	GCSCredentials string
}

var tableFormats = map[string]func(io.Writer, *actfstat.Report) error{
	"none": nil,
	"text": actfstat.FormatText,
	"csv":  actfstat.FormatCSV,
	"html": actfstat.FormatHTML,
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// Main runs the command of variant v with the given arguments. Messages
// go to stdout, usage and flag errors to stderr.
func Main(v *Variant, stdout, stderr io.Writer, args []string) error {
	var cfg Config
	fs := flag.NewFlagSet(v.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [flags] file...\n", v.Name)
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.OutDir, "o", ".", "write charts into `dir`")
	fs.StringVar(&cfg.Format, "format", "png", "chart `format`: "+strings.Join(actfchart.Formats, ", "))
	flagActf := fs.String("actf", v.Functions, "comma-separated `functions` for the comparison chart")
	fs.StringVar(&cfg.Reference, "ref", v.Reference, "reference `function` ordering the overlay axis")
	fs.StringVar(&cfg.Table, "table", "none", "print the comparison report as `format`: none, text, csv, html")
	flagCommit := "legacy"
	if v.Format.HasModes() {
		fs.StringVar(&flagCommit, "commit", flagCommit, "fad commit `policy`: legacy or boundary")
	}
	fs.StringVar(&cfg.DB, "db", "", "archive runs into the database `driver:dsn`")
	fs.StringVar(&cfg.Baseline, "baseline", "", "compare against the archived run `label` (requires -db)")
	fs.StringVar(&cfg.GCS, "gcs", "", "upload charts to Cloud Storage `bucket[/prefix]` instead of -o")
	fs.StringVar(&cfg.GCSCredentials, "gcs-credentials", "", "service account key `file` for -gcs")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	bad := func(format string, args ...interface{}) error {
		fmt.Fprintf(stderr, "%s: "+format+"\n", append([]interface{}{v.Name}, args...)...)
		fs.Usage()
		return ErrUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return ErrUsage
	}
	if !contains(actfchart.Formats, cfg.Format) {
		return bad("unknown chart format %q", cfg.Format)
	}
	if _, ok := tableFormats[cfg.Table]; !ok {
		return bad("unknown table format %q", cfg.Table)
	}
	commit, err := actfmt.ParseCommitPolicy(flagCommit)
	if err != nil {
		return bad("%v", err)
	}
	cfg.Commit = commit
	if cfg.Baseline != "" && cfg.DB == "" {
		return bad("-baseline requires -db")
	}
	if cfg.DB != "" && !strings.Contains(cfg.DB, ":") {
		return bad("-db must have the form driver:dsn")
	}
	cfg.Functions = splitList(*flagActf)

	return Run(context.Background(), v, &cfg, fs.Args(), stdout)
}

// Run loads the named log files, renders their charts and publishes
// them according to cfg. Messages are written to w.
//
// Loading no file at all is reported but is not an error.
func Run(ctx context.Context, v *Variant, cfg *Config, paths []string, w io.Writer) error {
	l := log.New(w, v.Name+": ", 0)

	runs, err := Load(v, cfg, paths, func(format string, args ...interface{}) {
		l.Printf("warning: "+format, args...)
	})
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		l.Print("error: not even one benchmark loaded")
		return nil
	}

	if cfg.DB != "" {
		runs, err = archive(ctx, cfg, runs, l)
		if err != nil {
			return err
		}
	}

	charts, err := Render(v, cfg, runs)
	if err != nil {
		return err
	}
	for _, msg := range charts.Messages {
		l.Print(msg)
	}

	sink, closeSink, err := openSink(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSink()
	locs, err := Show(ctx, sink, charts, v.Format.Name, cfg.Format)
	for _, loc := range locs {
		l.Printf("wrote %s", loc)
	}
	if err != nil {
		return err
	}

	if format := tableFormats[cfg.Table]; format != nil && charts.Report != nil {
		return format(w, charts.Report)
	}
	return nil
}

// Load parses the log files in paths. Files that cannot be opened are
// passed to warn and skipped.
func Load(v *Variant, cfg *Config, paths []string, warn func(string, ...interface{})) ([]*actfmt.Run, error) {
	files := &actfmt.Files{
		Paths:       paths,
		AllowLabels: true,
		Format:      v.Format,
		Options:     actfmt.Options{Commit: cfg.Commit},
		Warn:        warn,
	}
	return files.Runs()
}

// archive saves runs into the database of cfg. If cfg.Baseline is set,
// the archived baseline run is loaded first and returned ahead of
// runs.
func archive(ctx context.Context, cfg *Config, runs []*actfmt.Run, l *log.Logger) ([]*actfmt.Run, error) {
	driver, dsn, _ := strings.Cut(cfg.DB, ":")
	d, err := db.OpenSQL(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer d.Close()

	if cfg.Baseline != "" {
		base, err := d.LoadRun(ctx, cfg.Baseline, runs[0].Format)
		if err != nil {
			return nil, err
		}
		l.Printf("loaded baseline %s", base.Label)
		runs = append([]*actfmt.Run{base}, runs...)
	}
	for _, run := range runs {
		if cfg.Baseline != "" && run == runs[0] {
			continue
		}
		id, err := d.SaveRun(ctx, run)
		if err != nil {
			return nil, fmt.Errorf("saving run %s: %w", run.Label, err)
		}
		l.Printf("saved run %s (id %d)", run.Label, id)
	}
	return runs, nil
}

// Charts is the rendered output of one command.
type Charts struct {
	// Functions compares all functions of every run.
	Functions *actfchart.Figure

	// Runs compares the runs against the first one. It is nil if
	// there was nothing to compare.
	Runs *actfchart.Figure

	// Report holds the numbers behind Runs. It is nil for fewer
	// than two runs.
	Report *actfstat.Report

	// Messages describe charts that could not be drawn and
	// comparisons that were skipped.
	Messages []string
}

// Render draws the charts of runs, which must not be empty.
func Render(v *Variant, cfg *Config, runs []*actfmt.Run) (*Charts, error) {
	c := new(Charts)

	oopts := actfchart.DefaultOverlayOptions(v.Format)
	if cfg.Reference != "" {
		oopts.Reference = cfg.Reference
	}
	fig, err := actfchart.CompareFunctions(runs, oopts)
	if err != nil {
		return nil, err
	}
	c.Functions = fig

	report, err := actfstat.Compare(runs, actfstat.Options{
		Functions:       cfg.Functions,
		IncludeBaseline: v.IncludeBaseline,
	})
	if err != nil && !errors.Is(err, actfstat.ErrNotEnoughRuns) {
		return nil, err
	}
	c.Report = report
	if report != nil {
		for _, w := range report.Warnings {
			c.Messages = append(c.Messages, "warning: "+w)
		}
	}

	var bopts actfchart.BarOptions
	if report != nil {
		bopts = actfchart.DefaultBarOptions(report)
	}
	c.Runs, err = actfchart.CompareRuns(report, bopts)
	switch {
	case errors.Is(err, actfstat.ErrNotEnoughRuns):
		c.Messages = append(c.Messages, "error: not enough benchmarks for comparison chart")
	case errors.Is(err, actfchart.ErrNoComparisons):
		c.Messages = append(c.Messages, "error: none of the selected functions can be compared")
	case err != nil:
		return nil, err
	}
	return c, nil
}

// Show writes the figures of c to s as prefix_functions.format and
// prefix_runs.format. It returns the locations written.
func Show(ctx context.Context, s publish.Sink, c *Charts, prefix, format string) ([]string, error) {
	var locs []string
	for _, out := range []struct {
		name string
		fig  *actfchart.Figure
	}{
		{"functions", c.Functions},
		{"runs", c.Runs},
	} {
		if out.fig == nil {
			continue
		}
		w, h := out.fig.Size()
		wt, err := out.fig.WriterTo(w, h, format)
		if err != nil {
			return locs, err
		}
		name := prefix + "_" + out.name + "." + format
		if err := publish.WriteTo(ctx, s, name, wt); err != nil {
			return locs, err
		}
		locs = append(locs, s.Location(name))
	}
	return locs, nil
}

func openSink(ctx context.Context, cfg *Config) (publish.Sink, func(), error) {
	if cfg.GCS == "" {
		return publish.Dir(cfg.OutDir), func() {}, nil
	}
	opts, err := publish.ClientOptions(ctx, cfg.GCSCredentials)
	if err != nil {
		return nil, nil, err
	}
	g, err := publish.NewGCS(ctx, cfg.GCS, opts...)
	if err != nil {
		return nil, nil, err
	}
	return g, func() { g.Close() }, nil
}
