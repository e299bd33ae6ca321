// Command droidsig creates a simplified DROID signature file from a
// directory of PRONOM format reports.
//
// Usage:
//
//	droidsig build [--pronom ./pronom] [--output DROID_SignatureFile_Simple.xml]
//	droidsig explain "04??[01:0C]{28}"
//	droidsig version
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/digipres-tools/droidsig/core/pattern"
	"github.com/digipres-tools/droidsig/core/sigfile"
	"github.com/digipres-tools/droidsig/internal/builder"
	"github.com/digipres-tools/droidsig/internal/config"
	"github.com/digipres-tools/droidsig/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for droidsig.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" help:"Log level: debug, info, warn, error (overrides config)"`
	LogFormat string `name:"log-format" help:"Log format: text, json (overrides config)"`

	Build   BuildCmd   `cmd:"" help:"Compile PRONOM reports into a signature file"`
	Explain ExplainCmd `cmd:"" help:"Break a byte-sequence pattern into its elements"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// BuildCmd runs the full pipeline. Flags override config file values,
// which override the built-in defaults.
type BuildCmd struct {
	Pronom     string `short:"p" help:"Directory of PRONOM reports, e.g. from builder" type:"path"`
	Output     string `short:"o" help:"Filename to output to"`
	OutputDate bool   `short:"t" help:"Output a default filename carrying the current timestamp"`
	Workers    int    `help:"Concurrent report extractors"`
	DB         string `help:"Also export the format registry to a SQLite database" type:"path"`
	Config     string `help:"TOML config file" type:"path"`
}

func (c *BuildCmd) Run() error {
	cfg, err := c.resolve()
	if err != nil {
		return err
	}

	log, collector, err := buildLogger(cfg)
	if err != nil {
		return err
	}

	output := cfg.Output
	if cfg.OutputDate {
		output = timestampedOutput(time.Now().UTC())
	}

	result, err := builder.Run(context.Background(), builder.Options{
		PronomDir: cfg.PronomDir,
		Output:    output,
		Workers:   cfg.Workers,
		CatalogDB: cfg.CatalogDB,
	}, log)
	if err != nil {
		log.Error("build failed", "err", err)
		return err
	}

	log.Info("build complete",
		"formats", result.Formats,
		"errors", collector.Errors(),
		"warnings", collector.Warnings())
	return nil
}

// resolve layers flag values over the config file over the defaults.
func (c *BuildCmd) resolve() (config.Config, error) {
	cfg := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if c.Pronom != "" {
		cfg.PronomDir = c.Pronom
	}
	if c.Output != "" {
		cfg.Output = c.Output
	}
	if c.OutputDate {
		cfg.OutputDate = true
	}
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	if c.DB != "" {
		cfg.CatalogDB = c.DB
	}
	if CLI.LogLevel != "" {
		cfg.LogLevel = CLI.LogLevel
	}
	if CLI.LogFormat != "" {
		cfg.LogFormat = CLI.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func buildLogger(cfg config.Config) (*slog.Logger, *logging.Collector, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	base := logging.New(os.Stderr, level, format)
	collector := logging.NewCollector(base.Handler())
	return logging.WithRunID(slog.New(collector)), collector, nil
}

// timestampedOutput names the output file after the generation time;
// colons are swapped out to keep the name filesystem-safe.
func timestampedOutput(now time.Time) string {
	stamp := strings.ReplaceAll(now.Format(sigfile.TimeFormat), ":", "-")
	return fmt.Sprintf("DROID_SignatureFile_Simple_%s.xml", stamp)
}

// ExplainCmd parses a pattern value and prints one line per element.
type ExplainCmd struct {
	Pattern string `arg:"" help:"Byte-sequence pattern value"`
}

func (c *ExplainCmd) Run() error {
	p, err := pattern.Parse(c.Pattern)
	if err != nil {
		return err
	}
	for _, line := range pattern.Describe(p) {
		fmt.Println(line)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("droidsig %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("droidsig"),
		kong.Description("Create a simplified DROID signature file from a PRONOM export."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
