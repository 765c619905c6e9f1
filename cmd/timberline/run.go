package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/appengine-ltd/timberline/internal/appdir"
	"github.com/appengine-ltd/timberline/internal/console"
	"github.com/appengine-ltd/timberline/internal/game"
	"github.com/appengine-ltd/timberline/internal/inspect"
	"github.com/appengine-ltd/timberline/internal/sound"
)

// version, commit, date are injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	showVersion bool
	configPath  string
	writeConfig bool
	seed        int64
	inspectAddr string
	console     bool
	mute        bool
}

// frontEnd is what the interactive view needs; each build supplies its own
// runInteractive.
type frontEnd struct {
	session    *game.Session
	dispatcher *console.Dispatcher
	sound      *sound.Manager
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := run(os.Args[1:]); err != nil {
		log.Println("error running timberline:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if opts.showVersion {
		fmt.Printf("Timberline %s (%s) %s\n", version, commit, date)
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if opts.writeConfig {
		if err := game.SaveWorldConfig(opts.configPath, cfg); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		log.Printf("wrote %s", opts.configPath)
		return nil
	}

	world, err := game.NewWorld(cfg)
	if err != nil {
		return fmt.Errorf("create world: %w", err)
	}
	session := game.NewSession(world)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inspectErrors := make(chan error, 1)
	if opts.inspectAddr != "" {
		go func() {
			inspectErrors <- inspect.Serve(ctx, opts.inspectAddr, session)
		}()
	}

	fe := frontEnd{
		session:    session,
		dispatcher: console.NewDispatcher(session, nil),
	}
	if opts.console {
		err = console.Run(os.Stdin, os.Stdout, fe.dispatcher)
	} else {
		fe.sound = newSound(opts.mute)
		defer fe.sound.Cleanup()
		err = runInteractive(fe)
	}

	stop()
	if opts.inspectAddr != "" {
		if inspectErr := <-inspectErrors; inspectErr != nil {
			log.Println(inspectErr)
		}
	}
	return err
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("timberline", flag.ContinueOnError)
	fs.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	fs.StringVar(&opts.configPath, "config", "", "world config file (.json, .yaml); defaults to the per-user config")
	fs.BoolVar(&opts.writeConfig, "write-config", false, "write the effective world config to -config and exit")
	fs.Int64Var(&opts.seed, "seed", 0, "world seed; 0 keeps the config value")
	fs.StringVar(&opts.inspectAddr, "inspect", "", "serve the HTTP inspector on this address, e.g. :5000")
	fs.BoolVar(&opts.console, "console", false, "play in a plain line console instead of the interactive view")
	fs.BoolVar(&opts.mute, "mute", false, "disable sound")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.configPath == "" {
		path, err := appdir.ConfigPath()
		if err != nil {
			return options{}, fmt.Errorf("locate config: %w", err)
		}
		opts.configPath = path
	}
	return opts, nil
}

func loadConfig(opts options) (game.WorldConfig, error) {
	cfg, err := game.LoadWorldConfig(opts.configPath)
	if err != nil {
		return game.WorldConfig{}, err
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}
	return cfg, nil
}

func newSound(mute bool) *sound.Manager {
	if mute {
		return nil
	}
	m := sound.NewManager()
	if err := m.Initialize(); err != nil {
		// Non-fatal, the game runs silently.
		log.Printf("audio unavailable: %v", err)
		return nil
	}
	return m
}
