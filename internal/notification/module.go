package notification

import (
	"context"

	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/notification/handler"
	"github.com/papertrails/papertrails/internal/notification/publisher"
	"github.com/papertrails/papertrails/internal/pubsub"
	"github.com/papertrails/papertrails/internal/pubsub/memory"
	"go.uber.org/fx"
)

// Module provides the notification bus, its publisher and its handler
var Module = fx.Options(
	fx.Provide(
		providePubSub,
		publisher.NewPublisher,
		handler.NewHandler,
	),
	fx.Invoke(registerHooks),
)

func providePubSub(logger *logger.Logger) pubsub.PubSub {
	return memory.NewPubSub(logger)
}

func registerHooks(lc fx.Lifecycle, p publisher.NotificationPublisher, logger *logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("closing notification publisher")
			return p.Close()
		},
	})
}
