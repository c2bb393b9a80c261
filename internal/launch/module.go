package launch

import (
	"context"

	"github.com/plugspotter/devup/util/logging"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type SupervisorParams struct {
	fx.In

	Config Config
	Logger *zap.Logger
}

// NewLifecycleSupervisor binds the supervisor to the fx lifecycle:
// the children start with the app and are terminated on shutdown.
func NewLifecycleSupervisor(params SupervisorParams, lc fx.Lifecycle) *Supervisor {
	supervisor := NewSupervisor(params.Config, params.Logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return supervisor.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return supervisor.Stop(ctx)
		},
	})

	return supervisor
}

// Module provides the process supervisor module.
func Module(config Config) fx.Option {
	return fx.Module(
		"launch",

		// rename logger for module
		logging.DecorateLogger("launch"),

		// provide launch config
		fx.Supply(config),

		// provide supervisor
		fx.Provide(NewLifecycleSupervisor),

		// invoke supervisor
		fx.Invoke(func(*Supervisor) {}),
	)
}
