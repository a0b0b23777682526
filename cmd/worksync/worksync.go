// The worksync command loads one tenant of a workspace service and
// prints a summary of its contacts, tasks, calendar, projects, folders
// and messages.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/matta/worksync/internal/app"
	"github.com/matta/worksync/internal/config"
	"github.com/pkg/errors"
)

var (
	flagTrace   = flag.Bool("T", false, "request debug tracing")
	flagConfig  = flag.String("config", "", "path to a YAML config file")
	flagTenant  = flag.String("tenant", "", "tenant slug, path or URL")
	flagFolder  = flag.String("folder", "", "folder id to open")
	flagChannel = flag.String("channel", "", "channel to open")
)

func run(ctx context.Context) error {
	cfg, err := config.Load(*flagConfig)
	if err != nil {
		return errors.Wrap(err, "unable to load configuration")
	}
	if *flagTrace {
		cfg.Gateway.Trace = true
		cfg.Log.Level = "debug"
	}
	logger := app.NewLogger(cfg.Log, os.Stderr)

	g := app.NewGateway(cfg.Gateway, logger)
	req := app.Request{
		Tenant:  *flagTenant,
		Folder:  *flagFolder,
		Channel: *flagChannel,
	}
	if err := app.Run(ctx, g, cfg, req, os.Stdout, logger); err != nil {
		return errors.Wrap(err, "unable to synchronize")
	}
	return nil
}

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("Failed: %v\n", err)
	}
}
