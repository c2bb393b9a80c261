package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/plugspotter/devup/app"
	"github.com/plugspotter/devup/config"
	"github.com/plugspotter/devup/internal/bootstrap"
	"github.com/plugspotter/devup/internal/launch"
	"github.com/plugspotter/devup/internal/probe"
	"github.com/plugspotter/devup/internal/shell"
	"github.com/plugspotter/devup/util/conf"
	"github.com/plugspotter/devup/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

var (
	upCmdDescription = `The up command performs the full setup-and-launch run:

	1. install the pinned backend dependencies (best effort),
	2. smoke-test the MongoDB connection,
	3. install the frontend dependencies,
	4. launch the api server and the frontend dev server.

	If the connection test fails the operator is asked whether to
	continue. The command then blocks until interrupted and shuts
	both servers down gracefully.`
	upCmd = &cli.Command{
		Name:        "up",
		Usage:       "Install dependencies, test the database and launch both dev servers.",
		Description: upCmdDescription,
		Action:      upAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "host",
				Aliases:  []string{"H"},
				Usage:    "The address the api server binds to.",
				Category: "server",
				EnvVars:  []string{"DEVUP_HOST"},
			},
			&cli.IntFlag{
				Name:     "port",
				Aliases:  []string{"P"},
				Usage:    "The api server port.",
				Category: "server",
				EnvVars:  []string{"DEVUP_PORT"},
			},
			&cli.IntFlag{
				Name:     "frontend-port",
				Usage:    "The frontend dev server port (display and readiness only).",
				Category: "server",
				EnvVars:  []string{"DEVUP_FRONTEND_PORT"},
			},
			&cli.BoolFlag{
				Name:    "skip-install",
				Usage:   "skip both dependency install phases.",
				EnvVars: []string{"DEVUP_SKIP_INSTALL"},
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "continue without prompting when the connection test fails.",
				EnvVars: []string{"DEVUP_YES"},
			},
			&cli.BoolFlag{
				Name:    "strict-backend-install",
				Usage:   "treat backend package install failures as fatal.",
				EnvVars: []string{"DEVUP_STRICT_BACKEND_INSTALL"},
			},
		},
	}
)

const (
	startTimeoutSlack = 30 * time.Second
	stopTimeoutSlack  = 10 * time.Second
)

func init() {
	rootApp.Commands = append(rootApp.Commands, upCmd)
}

func upAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	// re-parse the config with the command flags layered on top
	cfg, err := conf.Parse[config.Config](conf.ParseOptions{
		Cli: ctx,
		CliMap: map[string]string{
			"frontend-port":          "frontend_port",
			"strict-backend-install": "strict_backend_install",
		},
		Defaults: config.DefaultConfig,
		FileName: configFileName(ctx),
		Log:      log,
	})
	if err != nil {
		return err
	}

	installer := bootstrap.NewInstaller(cfg.Install, log)

	if !ctx.Bool("skip-install") {
		if err := installer.Backend(ctx.Context); err != nil {
			return cli.Exit(fmt.Sprintf("backend install failed: %s", err), 1)
		}
	}

	prober := probe.New(cfg.Probe, log)

	if err := prober.Check(ctx.Context); err != nil {
		fmt.Printf("\nMongoDB connection failed: %s\n", err)
		printTroubleshooting()

		if !ctx.Bool("yes") && !confirm("\nContinue anyway? (y/n): ") {
			return cli.Exit("aborted: database unreachable", 1)
		}
	}

	if !ctx.Bool("skip-install") {
		if err := installer.Frontend(ctx.Context); err != nil {
			return cli.Exit(fmt.Sprintf("frontend install failed: %s", err), 1)
		}
	}

	fmt.Println("\nSetup complete, launching servers...")
	fmt.Printf("  API:      http://localhost:%d\n", cfg.Launch.Port)
	fmt.Printf("  API docs: http://localhost:%d%s\n", cfg.Launch.Port, cfg.Launch.ReadinessPath)
	fmt.Printf("  Frontend: http://localhost:%d\n", cfg.Launch.FrontendPort)
	fmt.Println("\nPress Ctrl+C to stop all services.")

	shl, err := app.New(ctx)
	if err != nil {
		return err
	}

	err = shl.Run(ctx.Context,
		launch.Module(cfg.Launch),
		// leave room for the readiness poll on start, and for the
		// graceful wait plus kill escalation of both children on stop
		fx.StartTimeout(cfg.Launch.ReadinessBudget+cfg.Launch.HeadStart+startTimeoutSlack),
		fx.StopTimeout(2*cfg.Launch.ShutdownTimeout+stopTimeoutSlack),
	)
	if err == nil {
		return nil
	}

	var exitErr *shell.ExitError
	if errors.As(err, &exitErr) {
		return cli.Exit("", exitErr.ExitCode)
	}

	return err
}

func printTroubleshooting() {
	fmt.Println("\n  Troubleshooting:")
	fmt.Println("  1. Verify MONGODB_URI in the .env file")
	fmt.Println("  2. Check MongoDB Atlas credentials")
	fmt.Println("  3. Whitelist your IP in MongoDB Atlas")
	fmt.Println("  4. Ensure internet connection is stable")
}

func confirm(prompt string) bool {
	fmt.Print(prompt)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}

	return strings.ToLower(strings.TrimSpace(line)) == "y"
}
