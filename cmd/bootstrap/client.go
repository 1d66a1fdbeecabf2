package bootstrap

import (
	"log/slog"

	"spellbudex/internal/api"
	"spellbudex/internal/console"
	"spellbudex/internal/pkg/config"
	"spellbudex/internal/session"

	"go.uber.org/fx"
)

var ClientModule = fx.Module("client",
	fx.Provide(
		func(n *console.Notifier) api.Reactor { return n },
		func(s *session.Store) api.CredentialSource { return s },
		func(cfg config.Config, creds api.CredentialSource, reactor api.Reactor, log *slog.Logger) (*api.Client, error) {
			return api.NewClient(cfg.API, creds, reactor, log)
		},
	),
)
