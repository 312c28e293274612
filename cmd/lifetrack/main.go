package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/config"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/errors"
	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/storage"
	"github.com/julianstephens/lifetrack/internal/tracker"
	"github.com/julianstephens/lifetrack/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file path." type:"path" placeholder:"FILE"`
	Store    string `help:"Store location: SQLite path, *.json path, ':memory:', redis:// URL, postgres:// URL without password, or 'postgres' to use the keyring."`
	Timezone string `help:"IANA timezone used to decide which day an entry belongs to."`
	Debug    bool   `help:"Log debug output to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize lifetrack storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Sections cli.SectionsCmd `cmd:"" help:"List tracked sections."`
	Add      cli.AddCmd      `cmd:"" help:"Add an entry for today."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Delete an entry."`
	Entries  cli.EntriesCmd  `cmd:"" help:"List entries."`
	Day      cli.DayCmd      `cmd:"" help:"Show completion for a day."`
	Week     cli.WeekCmd     `cmd:"" help:"Show the weekly dashboard."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate cli.ValidateCmd `cmd:"" help:"Check stored entries against the section catalog."`
	DebugCmd cli.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Keyring struct {
		Set    cli.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    cli.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete cli.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status cli.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

// commands that never touch the store
var storeless = map[string]bool{"keyring": true, "sections": true}

// commands that open the store themselves
var selfLoading = map[string]bool{"init": true, "doctor": true}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal daily life tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	overrides := config.Overrides{
		ConfigFile: CLI.Config,
		Store:      CLI.Store,
		Timezone:   CLI.Timezone,
	}
	if CLI.Debug {
		overrides.Debug = &CLI.Debug
	}
	cfg, err := config.Load(overrides)
	if err != nil {
		errors.Fatal(fmt.Errorf("failed to load config: %w", err))
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	command := strings.Fields(ctx.Command())[0]
	appCtx := &cli.Context{Config: cfg}

	if !storeless[command] {
		store, err := cli.OpenStore(cfg.Store)
		if err != nil {
			errors.Fatal(err)
		}
		appCtx.Store = store

		loc, err := utils.LoadLocation(cfg.Timezone)
		if err != nil {
			errors.Fatal(err)
		}
		appCtx.Tracker = tracker.New(store, tracker.WithLocation(loc))

		if !selfLoading[command] {
			if err := appCtx.Load(); err != nil {
				closeStore(appCtx.Store)
				errors.Fatal(err)
			}
		}
	}

	err = ctx.Run(appCtx)
	if appCtx.Store != nil {
		closeStore(appCtx.Store)
	}
	errors.Fatal(err)
}

func closeStore(store storage.Provider) {
	if err := store.Close(); err != nil {
		logger.Warn("Failed to close store", "error", err)
	}
}
