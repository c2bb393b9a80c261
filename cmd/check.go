package cmd

import (
	"fmt"

	"github.com/plugspotter/devup/config"
	"github.com/plugspotter/devup/internal/probe"
	"github.com/plugspotter/devup/util/conf"
	"github.com/plugspotter/devup/util/logging"
	"github.com/urfave/cli/v2"
)

var (
	checkCmdDescription = `The check command runs the standalone MongoDB smoke test:
	a liveness ping followed by listing the collection names of
	the configured database. It exits with status 0 when the
	deployment is reachable and 1 otherwise.`
	checkCmd = &cli.Command{
		Name:        "check",
		Usage:       "Smoke-test the MongoDB connection and exit.",
		Description: checkCmdDescription,
		Action:      checkAction,
	}
)

func init() {
	rootApp.Commands = append(rootApp.Commands, checkCmd)
}

func checkAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	cfg, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return err
	}

	fmt.Println("Testing MongoDB connection...")
	fmt.Printf("  Database: %s\n", cfg.Probe.Database)
	fmt.Printf("  URI: %s\n", truncate(cfg.Probe.URI, 50))

	prober := probe.New(cfg.Probe, log)

	if err := prober.Check(ctx.Context); err != nil {
		return cli.Exit(fmt.Sprintf("MongoDB connection failed: %s", err), 1)
	}

	fmt.Println("MongoDB connection successful!")

	names, err := prober.Collections(ctx.Context)
	if err != nil {
		return cli.Exit(fmt.Sprintf("MongoDB connection failed: %s", err), 1)
	}

	fmt.Printf("Collections: %v\n", names)

	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max] + "..."
}
