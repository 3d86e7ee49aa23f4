package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jdiff/internal/checksum"
	"github.com/mcncl/jdiff/internal/config"
	"github.com/mcncl/jdiff/internal/errors"
	"github.com/mcncl/jdiff/internal/formatter"
	"github.com/mcncl/jdiff/internal/parser"
	"github.com/mcncl/jdiff/internal/position"
	"github.com/mcncl/jdiff/internal/report"
)

// CLI defines the command-line interface
var CLI struct {
	FileA string `arg:"" name:"file-a" help:"Path to the first (older) JSON file." type:"path"`
	FileB string `arg:"" name:"file-b" help:"Path to the second (newer) JSON file." type:"path"`

	Config    string           `help:"Path to a YAML config file. Defaults to the nearest .jdiff.yml." short:"c" type:"path"`
	Color     string           `help:"When to colorize output: auto, always or never." placeholder:"MODE"`
	Values    bool             `help:"Print old and new values next to changed keys." short:"V"`
	Unchanged bool             `help:"Include unchanged members in nested diffs." short:"u"`
	Positions string           `help:"How top-level keys are located for ordering: text or span." placeholder:"STRATEGY"`
	NoSummary bool             `help:"Do not print the summary line."`
	Debug     bool             `help:"Enable debug logging." short:"d"`
	Version   kong.VersionFlag `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger *slog.Logger
	Out    io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jdiff"),
		kong.Description("Compare two JSON files and report their structural differences"),
		kong.UsageOnError(),
		kong.Vars{"version": "jdiff version " + Version},
	)

	// Wrong argument counts print usage and exit with status 1
	_, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	cfg, configPath, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	ctx := &Context{
		Config: cfg,
		Logger: newLogger(os.Stderr, cfg.Dev.Debug),
		Out:    os.Stdout,
	}
	ctx.Logger.Debug("loaded configuration", "path", configPath,
		"color", cfg.Output.Color, "positions", cfg.Positions.Strategy)

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jdiff --help\n")
		os.Exit(1)
	}
}

// loadConfig merges the config file (explicit or discovered) with CLI flags.
// The returned path is empty when only defaults and flags apply.
func loadConfig() (*config.Config, string, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, config.CLIOverrides{
		Color:      CLI.Color,
		Positions:  CLI.Positions,
		ShowValues: CLI.Values,
		Unchanged:  CLI.Unchanged,
		NoSummary:  CLI.NoSummary,
		Debug:      CLI.Debug,
	})
	if err != nil {
		if configPath != "" {
			return nil, "", errors.NewConfigError(fmt.Sprintf("failed to load '%s': %v", configPath, err), err)
		}
		return nil, "", errors.NewConfigError(err.Error(), err)
	}
	return cfg, configPath, nil
}

// newLogger writes text records to w; debug records only when debug is set
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// run executes the main program logic
func run(ctx *Context) error {
	logger := ctx.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	out := ctx.Out
	if out == nil {
		out = os.Stdout
	}
	fmtr := formatter.NewFormatter(formatter.OptionsFromConfig(ctx.Config, out))

	// 1. Identical bytes need no parsing
	same, err := checksum.SameContent(CLI.FileA, CLI.FileB)
	if err != nil {
		return err
	}
	logger.Debug("compared file digests", "file_a", CLI.FileA, "file_b", CLI.FileB, "identical", same)
	if same {
		if err := fmtr.RenderIdentical(out); err != nil {
			return errors.NewOutputError("failed to write to stdout", err)
		}
		return nil
	}

	// 2. Parse both documents
	docA, err := parser.ParseFile(CLI.FileA)
	if err != nil {
		return err
	}
	docB, err := parser.ParseFile(CLI.FileB)
	if err != nil {
		return err
	}
	logger.Debug("parsed documents", "bytes_a", len(docA.Raw), "bytes_b", len(docB.Raw))

	// 3. Classify and order
	builder := report.NewBuilder(report.Options{
		Strategy:         position.Strategy(ctx.Config.Positions.Strategy),
		IncludeUnchanged: ctx.Config.Output.ShowUnchanged,
		Logger:           logger,
	})
	rep, err := builder.Build(docA, docB)
	if err != nil {
		return err
	}

	// 4. Render
	if err := fmtr.Render(out, rep); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
