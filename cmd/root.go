// Package cmd implements the CLI command structure for tempo.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ndokic/tempo/internal/config"
	"github.com/ndokic/tempo/internal/journal"
	"github.com/ndokic/tempo/internal/logging"
	"github.com/ndokic/tempo/internal/store"
	"github.com/ndokic/tempo/internal/tracker"
	"github.com/ndokic/tempo/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tempo CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tempo", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "task":
		return taskCommand(cfg, remainingArgs)
	case "habit":
		return habitCommand(cfg, remainingArgs)
	case "goal":
		return goalCommand(cfg, remainingArgs)
	case "journal":
		return journalCommand(cfg, remainingArgs)
	case "stats":
		return statsCommand(cfg, remainingArgs)
	case "time":
		return timeCommand(cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// newService wires the store and tracker from config.
func newService(cfg *config.Config) (*tracker.Service, error) {
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps)
	st, err := store.New(cfg.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening data dir: %w", err)
	}
	return tracker.New(st, logger), nil
}

// newJournal opens the journal from config.
func newJournal(cfg *config.Config) (*journal.Journal, error) {
	j, err := journal.New(cfg.JournalDir)
	if err != nil {
		return nil, fmt.Errorf("opening journal dir: %w", err)
	}
	return j, nil
}

// tuiCommand launches the dashboard.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tempo tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	svc, err := newService(cfg)
	if err != nil {
		return err
	}
	return ui.RunTUI(ctx, svc)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("tempo version %s\n", Version)
	return nil
}

// parseID parses a positional numeric ID argument.
func parseID(args []string, what string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s id is required", what)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q", what, args[0])
	}
	return id, nil
}

// optionalStr returns a pointer to the flag value only when the flag was
// explicitly set, so updates can distinguish "unset" from "empty".
func optionalStr(fs *flag.FlagSet, name string, value *string) *string {
	if flagWasSet(fs, name) {
		return value
	}
	return nil
}

func flagWasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tempo - personal task, habit, and goal tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tempo [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  task          Manage tasks (add, list, done, update, delete, search)")
	fmt.Fprintln(w, "  habit         Manage habits (add, list, check, uncheck, streak, update, delete)")
	fmt.Fprintln(w, "  goal          Manage goals (add, list, progress, update, delete)")
	fmt.Fprintln(w, "  journal       Manage journal entries (add, list, search)")
	fmt.Fprintln(w, "  stats         Print task or habit analytics as JSON")
	fmt.Fprintln(w, "  time          Print time tracking analytics as JSON")
	fmt.Fprintln(w, "  tui           Launch the terminal dashboard (default command)")
	fmt.Fprintln(w, "  doctor        Check data files against their schemas")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
