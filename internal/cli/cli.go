package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/viewbind/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Options is the outcome of a successful Parse.
type Options struct {
	App *app.Config
	// Report asks for the diagnostics report of the pass to be printed
	// alongside the resolved views.
	Report bool
}

// listFlag collects a repeatable, comma-separated flag.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(v string) error {
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			*l = append(*l, item)
		}
	}
	return nil
}

// Parse processes command-line arguments. It returns the parsed options,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("viewbind", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
viewbind - resolves master pages, view models and binding files for Spark views.

Usage:
  viewbind [options] [TEMPLATE_ROOT]

Arguments:
  TEMPLATE_ROOT
    Directory holding the templates. Overrides templates.root from -config.

Options:
`)
		flagSet.PrintDefaults()
	}

	var configFlag string
	flagSet.StringVar(&configFlag, "config", "", "Path to a .hcl or .yaml configuration file, or a directory of .hcl files.")
	flagSet.StringVar(&configFlag, "c", "", "Path to the configuration (shorthand).")
	var typesFlag listFlag
	flagSet.Var(&typesFlag, "types", "Go package patterns to resolve view models from. Repeatable, comma-separated.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 0, "Number of templates bound concurrently. 0 uses the configured value.")
	reportFlag := flagSet.Bool("report", false, "Print the diagnostics report of the pass.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "at most one TEMPLATE_ROOT may be given"}
	}
	root := flagSet.Arg(0)

	if root == "" && configFlag == "" {
		slog.Debug("No template root or configuration provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath:   configFlag,
		TemplateRoot: root,
		TypePackages: typesFlag,
		Workers:      *workersFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return &Options{App: config, Report: *reportFlag}, false, nil
}
