package bootstrap

import (
	"log/slog"

	"spellbudex/internal/pkg/config"
	"spellbudex/internal/session"

	"go.uber.org/fx"
)

var SessionModule = fx.Module("session",
	fx.Provide(
		func(cfg config.Config, log *slog.Logger) (*session.Store, error) {
			return session.NewStore(cfg.Session.StateDir, log)
		},
	),
)
