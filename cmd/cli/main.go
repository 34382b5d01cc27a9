package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/vk/viewbind/internal/app"
	"github.com/vk/viewbind/internal/cli"
	"github.com/vk/viewbind/internal/diagnostics"
)

// main is the entrypoint for the viewbind application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// output is the JSON document written to stdout.
type output struct {
	*app.Result
	Report *diagnostics.Report `json:"report,omitempty"`
}

// run encapsulates the main application logic for easier testing and error
// handling. The result goes to outW, logs and usage to logW.
func run(ctx context.Context, outW, logW io.Writer, args []string) (err error) {
	opts, shouldExit, err := cli.Parse(args, logW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	viewbind, err := app.NewApp(logW, opts.App)
	if err != nil {
		return err
	}

	res, err := viewbind.Bind(ctx)
	if err != nil {
		return err
	}

	doc := output{Result: res}
	if opts.Report {
		reports := viewbind.History().RecentReports()
		doc.Report = reports[len(reports)-1]
	}

	enc := json.NewEncoder(outW)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
