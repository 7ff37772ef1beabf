package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/cli/backups"
	"github.com/julianstephens/habitual/internal/cli/system"
	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use the OS keyring, environment variables, or .pgpass instead." default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init    system.InitCmd    `cmd:"" help:"Initialize habitual storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Habit   cli.HabitCmd      `cmd:"" help:"Manage habits."`
	Done    cli.DoneCmd       `cmd:"" help:"Record a habit completion."`
	Streaks cli.StreaksCmd    `cmd:"" help:"Show streak statistics."`
	Log     cli.LogCmd        `cmd:"" help:"Show completion history."`
	Watch   cli.WatchCmd      `cmd:"" help:"Follow streak changes live."`
	Backup  struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
}

// resolveConfig picks the connection target: an explicit --config wins, then
// the HABITUAL_DB_CONNECTION environment variable, then the OS keyring, and
// finally the default sqlite path.
func resolveConfig(flag, defaultPath string) string {
	if flag != defaultPath && flag != "" {
		return flag
	}
	if env := os.Getenv("HABITUAL_DB_CONNECTION"); env != "" {
		return env
	}
	if connStr, err := keyring.GetConnectionString(); err == nil {
		return connStr
	} else if !errors.Is(err, keyring.ErrNotFound) && !errors.Is(err, keyring.ErrKeyringUnavailable) {
		logger.Warn("Keyring lookup failed", "error", err)
	}
	return flag
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func isPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") ||
		strings.HasPrefix(config, "postgresql://") ||
		strings.Contains(config, "host=")
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streak statistics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	config := resolveConfig(CLI.Config, constants.DefaultConfigPath)

	var store storage.Provider
	if isPostgres(config) {
		if postgres.HasEmbeddedCredentials(config) {
			fmt.Fprintf(os.Stderr, "❌ Error: PostgreSQL connection strings with embedded credentials are NOT allowed.\n")
			fmt.Fprintf(os.Stderr, "       Use one of these secure alternatives:\n")
			fmt.Fprintf(os.Stderr, "       1. OS keyring:    habitual keyring set \"postgresql://user@host:5432/habitual\"\n")
			fmt.Fprintf(os.Stderr, "       2. Environment:   export HABITUAL_DB_CONNECTION=\"postgresql://user@host:5432/habitual\"\n")
			fmt.Fprintf(os.Stderr, "       3. .pgpass file:  keep the password out of the connection string entirely\n")
			os.Exit(1)
		}
		store = postgres.New(config)
		if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: expandHome(filepath.Dir(constants.DefaultConfigPath))}); err != nil {
			apperrors.Fatalf("failed to initialize logging: %v", err)
		}
	} else {
		path := expandHome(config)
		store = sqlite.New(path)
		if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(path)}); err != nil {
			apperrors.Fatalf("failed to initialize logging: %v", err)
		}
	}

	appCtx := &cli.Context{
		Store:  store,
		UserID: constants.DefaultUserID,
	}

	// Init creates the database itself, and keyring commands never touch it.
	command := kctx.Command()
	needsStore := !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "keyring")
	if needsStore {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		defer store.Close()
	}

	if err := kctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}
