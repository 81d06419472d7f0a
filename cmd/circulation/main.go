// Command circulation runs the library circulation features from the command line
// or serves them over HTTP.
//
// Usage:
//
//	circulation [-memory] [-env file] [-v] <subcommand> [flags]
//
// Connection settings are read from the environment and an optional .env file,
// see the config package for the variables.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errReported) && !errors.Is(err, flag.ErrHelp) {
			log.Printf("%s %v", Failure("❌"), err)
		}

		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	global := flag.NewFlagSet("circulation", flag.ContinueOnError)
	global.SetOutput(errOut)
	global.Usage = func() { usage(errOut) }

	useMemory := global.Bool("memory", false, "use a throwaway in-memory store instead of postgres")
	envFile := global.String("env", ".env", "dotenv file to load")
	verbose := global.Bool("v", false, "log debug output")

	if err := global.Parse(args); err != nil {
		return err
	}

	if global.NArg() == 0 {
		usage(errOut)
		return errors.New("missing subcommand")
	}

	sc, ok := findSubcommand(global.Arg(0))
	if !ok {
		usage(errOut)
		return fmt.Errorf("unknown subcommand %q", global.Arg(0))
	}

	if err := config.LoadDotEnv(*envFile); err != nil {
		return err
	}

	settings, err := config.FromEnv()
	if err != nil {
		return err
	}

	obs := newObservability(ctx, settings, *verbose)
	defer obs.Shutdown()

	store, closeStore, err := openStore(ctx, settings, *useMemory, obs)
	if err != nil {
		return err
	}
	defer closeStore()

	handlers, err := newHandlers(store, newGateway(), settings.GatewayTimeout, obs)
	if err != nil {
		return err
	}

	c := &cli{
		out:      out,
		errOut:   errOut,
		handlers: handlers,
		store:    store,
		settings: settings,
		logger:   obs.Logger,
		now:      time.Now,
	}

	return sc.run(ctx, c, global.Args()[1:])
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: circulation [-memory] [-env file] [-v] <subcommand> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Subcommands:")

	for _, sc := range subcommands {
		fmt.Fprintf(w, "  %-14s %s\n", sc.name, sc.summary)
	}
}
