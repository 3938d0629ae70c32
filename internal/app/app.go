// Package app wires the configuration, the compute engines, the event bus
// and the observability stack, and runs the selected front-end.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/FlyinPancake/tauri-presentation/internal/cli"
	"github.com/FlyinPancake/tauri-presentation/internal/commands"
	"github.com/FlyinPancake/tauri-presentation/internal/config"
	apperrors "github.com/FlyinPancake/tauri-presentation/internal/errors"
	"github.com/FlyinPancake/tauri-presentation/internal/events"
	"github.com/FlyinPancake/tauri-presentation/internal/logging"
	"github.com/FlyinPancake/tauri-presentation/internal/metrics"
	"github.com/FlyinPancake/tauri-presentation/internal/montecarlo"
	"github.com/FlyinPancake/tauri-presentation/internal/progress"
	"github.com/FlyinPancake/tauri-presentation/internal/tracing"
	"github.com/FlyinPancake/tauri-presentation/internal/tui"
	"github.com/FlyinPancake/tauri-presentation/internal/ui"
)

// Application is one configured instance of the program.
type Application struct {
	Config      config.AppConfig
	ProgramName string
	ErrWriter   io.Writer
	Logger      logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger replaces the console logger built from -log-level.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New parses args (program name first) into an Application.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "tauri-presentation"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app := &Application{Config: cfg, ProgramName: programName, ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		level := logging.ParseLevel(cfg.LogLevel)
		if cfg.LogFormat == "json" {
			app.Logger = logging.NewLogger(errWriter, "app", level)
		} else {
			app.Logger = logging.NewConsoleLogger(errWriter, "app", level)
		}
	}
	return app, nil
}

// services are the long-lived collaborators shared by the front-ends.
type services struct {
	bus      *events.Bus
	emitter  *progress.Emitter
	registry *commands.Registry
	metrics  *metrics.Metrics
	tracer   *tracing.Provider
}

func (a *Application) newServices(ctx context.Context) (*services, error) {
	tp, err := tracing.NewProvider(tracing.Config{
		Enabled:     a.Config.Trace,
		Exporter:    "stdout",
		Writer:      a.ErrWriter,
		ServiceName: a.ProgramName,
	})
	if err != nil {
		return nil, apperrors.NewConfigError("tracing: %v", err)
	}

	bus := events.NewBus()
	m := metrics.NewMetrics()
	emitter := progress.NewEmitter(bus, progress.Options{
		Steps:    a.Config.ProgressSteps,
		Interval: a.Config.ProgressInterval,
	}, a.Logger)
	engine := montecarlo.NewEngine(montecarlo.Options{
		ChunkSize: a.Config.ChunkSize,
		Workers:   a.Config.Workers,
		Seed:      a.Config.Seed,
	}, a.Logger)

	registry := commands.NewRegistry(commands.Deps{
		Engine:      engine,
		Progress:    emitter,
		TaskContext: ctx,
		Metrics:     m,
		Tracer:      tp.Tracer(),
		Logger:      a.Logger,
	})
	return &services{bus: bus, emitter: emitter, registry: registry, metrics: m, tracer: tp}, nil
}

// shutdown stops background tasks and flushes telemetry. ctx must already be
// canceled so that running progress tasks exit.
func (s *services) shutdown(ctx context.Context, a *Application) {
	s.emitter.Wait()
	s.bus.Close()
	if err := s.tracer.Shutdown(context.WithoutCancel(ctx)); err != nil {
		a.Logger.Error("tracer shutdown failed", err)
	}
	if a.Config.Metrics {
		if err := s.metrics.WritePrometheus(a.ErrWriter); err != nil {
			a.Logger.Error("metrics dump failed", err)
		}
	}
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor, a.Config.Theme)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	ctx, cancel := context.WithCancel(ctx)

	svc, err := a.newServices(ctx)
	if err != nil {
		cancel()
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	defer func() {
		cancel()
		svc.shutdown(ctx, a)
	}()

	opts := cli.Options{
		Quiet:       a.Config.Quiet,
		Timeout:     a.Config.Timeout,
		EventBuffer: a.Config.EventBuffer,
	}

	switch {
	case a.Config.Completion != "":
		return a.runCompletion(out, svc.registry.Names())
	case a.Config.TUI:
		return tui.Run(ctx, svc.registry, svc.bus, a.Config.EventBuffer, Version)
	case a.Config.REPL:
		repl := cli.NewREPL(svc.registry, svc.bus, opts)
		repl.SetOutput(out)
		repl.Start(ctx)
		return apperrors.ExitSuccess
	case a.Config.Command != "":
		runner := cli.NewRunner(svc.registry, svc.bus, opts, out)
		return runner.Run(ctx, a.Config.Command, json.RawMessage(a.Config.Args))
	default:
		a.printCommands(out, svc.registry.Names())
		return apperrors.ExitSuccess
	}
}

func (a *Application) runCompletion(out io.Writer, names []string) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.ProgramName, names); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func (a *Application) printCommands(out io.Writer, names []string) {
	fmt.Fprintf(out, "Usage: %s -cmd <name> [-args '<json>'] | -repl | -tui\n\n", a.ProgramName)
	fmt.Fprintf(out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range names {
		fmt.Fprintf(out, "  %s\n", name)
	}
}

// IsHelpError checks if the error is a help flag error (-help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
