package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/primecalc/internal/calibration"
	"github.com/agbru/primecalc/internal/cli"
	"github.com/agbru/primecalc/internal/config"
	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/logging"
	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/scheme"
	"github.com/agbru/primecalc/internal/server"
	"github.com/agbru/primecalc/internal/tui"
	"github.com/agbru/primecalc/internal/ui"
)

// Application represents the primecalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   scheme.Factory
	ErrWriter io.Writer
	// In is read by the interactive menu.
	In     io.Reader
	Logger logging.Logger

	inFd int
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom engine Factory for the application.
func WithFactory(f scheme.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the reader used by the interactive menu. A reader that is
// not the process stdin is never treated as a terminal.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) {
		a.In = in
		a.inFd = -1
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin, inFd: int(os.Stdin.Fd())}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = scheme.GlobalRegistry()
	}

	programName := "primecalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		if !IsHelpError(err) {
			fmt.Fprintf(errWriter, "Error: %v\n", err)
		}
		return nil, err
	}
	app.Config = cfg

	if app.Logger == nil {
		level, _ := logging.ParseLevel(cfg.LogLevel)
		app.Logger = logging.NewConsoleLogger(errWriter, level, "primecalc")
	}
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}

	if err := a.resolveSelection(out); err != nil {
		return apperrors.HandleRunError(err, 0, a.ErrWriter, ui.ColorProvider{})
	}

	var collector *metrics.Collector
	if a.Config.MetricsAddr != "" {
		collector = metrics.NewCollector()
		collector.SetRunConfig(a.Config.Threads, a.Config.MaxNumber)
		srv := server.New(a.Config.MetricsAddr, collector, a.Logger)
		if err := srv.Start(ctx); err != nil {
			a.Logger.Error("cannot start metrics server", err, logging.String("addr", a.Config.MetricsAddr))
			return apperrors.HandleRunError(apperrors.NewConfigError("metrics address %q: %v", a.Config.MetricsAddr, err), 0, a.ErrWriter, ui.ColorProvider{})
		}
		defer func() {
			if err := srv.Shutdown(); err != nil {
				a.Logger.Error("metrics server shutdown", err)
			}
		}()
	}

	if a.Config.TUI {
		return a.runTUI(ctx, collector)
	}

	return a.runSearch(ctx, out, collector)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runCalibration runs the full calibration mode.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	engines := orchestration.GetEnginesToRun(config.SchemeAll, a.Factory)
	opts := calibration.Options{Logger: a.Logger}
	return calibration.RunCalibration(ctx, out, engines, opts, cli.CLIProgressReporter{}, cli.CLIResultPresenter{})
}

// resolveSelection fills the scheme and delivery mode from the interactive
// menu or the defaults.
func (a *Application) resolveSelection(out io.Writer) error {
	if cli.ShouldPrompt(a.Config, a.inFd) {
		sel, err := cli.PromptSelection(a.In, out, a.ErrWriter)
		if err != nil {
			return err
		}
		a.Config = cli.ApplySelection(a.Config, sel)
	}
	a.Config = a.Config.WithSelectionDefaults()
	return nil
}

// runTUI launches the interactive TUI dashboard.
func (a *Application) runTUI(ctx context.Context, collector *metrics.Collector) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	engines := orchestration.GetEnginesToRun(a.Config.Scheme, a.Factory)
	return tui.Run(ctx, engines, a.Config, tui.Options{Version: Version, Metrics: collector})
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
