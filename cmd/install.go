package cmd

import (
	"fmt"

	"github.com/plugspotter/devup/config"
	"github.com/plugspotter/devup/internal/bootstrap"
	"github.com/plugspotter/devup/util/conf"
	"github.com/plugspotter/devup/util/logging"
	"github.com/urfave/cli/v2"
)

var (
	installCmdDescription = `The install command runs both dependency install phases
	without probing the database or launching any server. Backend
	packages install best-effort; a frontend install failure is
	fatal.`
	installCmd = &cli.Command{
		Name:        "install",
		Usage:       "Install backend and frontend dependencies.",
		Description: installCmdDescription,
		Action:      installAction,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "strict-backend-install",
				Usage:   "treat backend package install failures as fatal.",
				EnvVars: []string{"DEVUP_STRICT_BACKEND_INSTALL"},
			},
		},
	}
)

func init() {
	rootApp.Commands = append(rootApp.Commands, installCmd)
}

func installAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	cfg, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return err
	}

	if ctx.Bool("strict-backend-install") {
		cfg.Install.StrictBackend = true
	}

	installer := bootstrap.NewInstaller(cfg.Install, log)

	if err := installer.Backend(ctx.Context); err != nil {
		return cli.Exit(fmt.Sprintf("backend install failed: %s", err), 1)
	}

	if err := installer.Frontend(ctx.Context); err != nil {
		return cli.Exit(fmt.Sprintf("frontend install failed: %s", err), 1)
	}

	return nil
}
