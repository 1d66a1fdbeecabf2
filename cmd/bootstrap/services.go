package bootstrap

import (
	"log/slog"
	"os"

	"spellbudex/internal/api"
	"spellbudex/internal/catalog"
	"spellbudex/internal/checkout"
	"spellbudex/internal/console"
	"spellbudex/internal/payment"
	"spellbudex/internal/pkg/clock"
	"spellbudex/internal/pkg/config"
	"spellbudex/internal/session"

	"go.uber.org/fx"
)

var ServiceModule = fx.Module("services",
	fx.Provide(
		func() *console.Notifier { return console.NewNotifier(os.Stdout) },
		func(client *api.Client, log *slog.Logger) *catalog.Service {
			return catalog.NewService(client, log)
		},
		func(client *api.Client, sessions *session.Store, log *slog.Logger) *checkout.Submitter {
			return checkout.NewSubmitter(client, sessions, clock.NewRealClock(), log)
		},
		func(client *api.Client, cfg config.Config, log *slog.Logger) *payment.Flow {
			return payment.NewFlow(client, payment.NewStripeElementFactory(), cfg.Payment, log)
		},
		func(
			client *api.Client,
			catalogSvc *catalog.Service,
			submitter *checkout.Submitter,
			payments *payment.Flow,
			sessions *session.Store,
			notifier *console.Notifier,
			log *slog.Logger,
		) *console.Console {
			return console.New(client, catalogSvc, submitter, payments, sessions, notifier, log, os.Stdin, os.Stdout)
		},
	),
)
