package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			// Refuse to wipe the database we are about to copy from
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized habitual storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx, c.Source); err != nil {
			return fmt.Errorf("data copy failed: %w", err)
		}
		fmt.Println("Data copy completed successfully!")
	}

	return nil
}

// copyData moves habits and completions from another database into the
// freshly initialized store, for sqlite-to-postgres moves and back.
func (c *InitCmd) copyData(ctx *cli.Context, sourcePath string) error {
	var sourceStore storage.Provider
	if strings.HasPrefix(sourcePath, "postgres://") || strings.HasPrefix(sourcePath, "postgresql://") {
		if valid, err := postgres.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
		sourceStore = postgres.New(sourcePath)
	} else {
		sourceStore = sqlite.New(sourcePath)
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Copying habits...")
	habits, err := sourceStore.GetAllHabits(ctx.UserID, true)
	if err != nil {
		return fmt.Errorf("failed to get habits from source: %w", err)
	}
	for _, habit := range habits {
		if err := ctx.Store.AddHabit(habit); err != nil {
			return fmt.Errorf("failed to add habit %s: %w", habit.ID, err)
		}
	}
	fmt.Printf("    Copied %d habits\n", len(habits))

	fmt.Println("  Copying completions...")
	copied := 0
	const pageSize = 500
	for offset := 0; ; offset += pageSize {
		page, err := sourceStore.ListCompletions(ctx.UserID, "", time.Time{}, pageSize, offset)
		if err != nil {
			return fmt.Errorf("failed to list completions from source: %w", err)
		}
		for _, completion := range page {
			if err := ctx.Store.AddCompletion(completion); err != nil {
				return fmt.Errorf("failed to add completion %s: %w", completion.ID, err)
			}
		}
		copied += len(page)
		if len(page) < pageSize {
			break
		}
	}
	fmt.Printf("    Copied %d completions\n", copied)

	return nil
}
