package main

import (
	"context"
	"log/slog"
	"os"

	"spellbudex/cmd/bootstrap"
	"spellbudex/internal/console"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

func runConsole(lc fx.Lifecycle, shutdowner fx.Shutdowner, ui *console.Console, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := ui.Run(ctx); err != nil && ctx.Err() == nil {
					logger.Error("console stopped", "error", err.Error())
				}
				_ = shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}

func main() {
	// Local overrides; absence is fine outside development.
	_ = godotenv.Load()

	app := fx.New(
		bootstrap.Module,
		fx.Invoke(
			runConsole,
		),
		fx.NopLogger,
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("failed to start application", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("failed to stop application", "error", err)
	}
}
