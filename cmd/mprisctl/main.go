package main

import (
	"context"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pliske/mprisctl/internal/cli"
	"github.com/pliske/mprisctl/internal/config"
	"github.com/pliske/mprisctl/internal/domain"
	"github.com/pliske/mprisctl/internal/mpris"
)

// AppOptions is the dependency graph of the application, kept separate
// from main so tests can validate it
var AppOptions = fx.Options(
	// Route dependency injection events through the CLI logger at debug
	// level so they never pollute command output
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		zl := &fxevent.ZapLogger{Logger: log}
		zl.UseLogLevel(zapcore.DebugLevel)
		return zl
	}),

	fx.Provide(
		newLogger,
		config.Load,
		mpris.NewSource,
		func(s *mpris.Source) domain.Source { return s },
		cli.NewRunner,
	),

	fx.Invoke(registerHooks),
)

func main() {
	flags := cli.Parse(os.Args[1:], os.Exit, os.Stdout, os.Stderr)

	app := fx.New(
		AppOptions,
		fx.Supply(flags),
	)

	// Run blocks until the command finishes and exits non-zero through
	// the shutdowner when the command failed
	app.Run()
}

// newLogger builds the process logger. Output stays quiet unless
// --verbose is set, since stdout carries command results
func newLogger(flags *cli.CLI) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if flags.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// registerHooks runs the invocation once the graph is up and shuts the
// process down with its exit code
func registerHooks(lc fx.Lifecycle, runner *cli.Runner, source *mpris.Source, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				code := runner.Run(context.Background())
				_ = shutdowner.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			return source.Close()
		},
	})
}
