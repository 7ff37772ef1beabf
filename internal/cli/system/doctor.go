package system

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/period"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

type DoctorCmd struct{}

// dbAccessor is implemented by both storage backends.
type dbAccessor interface {
	DB() *sql.DB
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := cmd.checkReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	if dbReachable {
		if err := cmd.checkSchema(ctx); err != nil {
			fmt.Printf("❌ Schema: FAIL\n   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema: OK\n")
		}

		if err := cmd.checkHabitIntegrity(ctx); err != nil {
			fmt.Printf("❌ Habit integrity: FAIL\n   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Habit integrity: OK\n")
		}

		if err := cmd.checkOrphanedCompletions(ctx); err != nil {
			fmt.Printf("❌ Orphaned completions: FAIL\n   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Orphaned completions: OK\n")
		}

		if err := cmd.checkDuplicatePeriods(ctx); err != nil {
			fmt.Printf("⚠ Duplicate periods: WARNING\n   %v\n", err)
		} else {
			fmt.Printf("✓ Duplicate periods: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema: SKIPPED (database not reachable)\n")
		fmt.Printf("⊘ Habit integrity: SKIPPED (database not reachable)\n")
		fmt.Printf("⊘ Orphaned completions: SKIPPED (database not reachable)\n")
		fmt.Printf("⊘ Duplicate periods: SKIPPED (database not reachable)\n")
	}

	if err := cmd.checkBackups(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	if err := cmd.checkClock(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func (cmd *DoctorCmd) checkReachable(ctx *cli.Context) error {
	store, ok := ctx.Store.(dbAccessor)
	if !ok {
		return fmt.Errorf("storage backend does not expose a database connection")
	}
	db := store.DB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.Ping()
}

func (cmd *DoctorCmd) checkSchema(ctx *cli.Context) error {
	db := ctx.Store.(dbAccessor).DB()
	for _, table := range []string{"habits", "completions", "schema_version"} {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			return fmt.Errorf("table %s not queryable: %w", table, err)
		}
	}
	return nil
}

func (cmd *DoctorCmd) checkHabitIntegrity(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(ctx.UserID, true)
	if err != nil {
		return err
	}
	for _, habit := range habits {
		if err := habit.Validate(); err != nil {
			return fmt.Errorf("habit %s: %w", habit.ID, err)
		}
	}
	return nil
}

func (cmd *DoctorCmd) checkOrphanedCompletions(ctx *cli.Context) error {
	db := ctx.Store.(dbAccessor).DB()

	var orphaned int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM completions c
		LEFT JOIN habits h ON c.habit_id = h.id
		WHERE h.id IS NULL
	`).Scan(&orphaned)
	if err != nil {
		return fmt.Errorf("failed to check orphaned completions: %w", err)
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d completions referencing non-existent habits", orphaned)
	}
	return nil
}

// checkDuplicatePeriods flags habits with more than one completion in the
// same period. Statistics deduplicate these, so it is a warning, not an
// error.
func (cmd *DoctorCmd) checkDuplicatePeriods(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(ctx.UserID, false)
	if err != nil {
		return err
	}

	duplicates := 0
	for _, habit := range habits {
		completions, err := ctx.Store.ListCompletionsBetween(
			ctx.UserID, habit.ID, time.Time{}, time.Now().AddDate(0, 0, 1))
		if err != nil {
			return err
		}

		cadence := period.ParseCadence(habit.Cadence)
		seen := make(map[string]bool)
		for _, completion := range completions {
			key := period.Key(completion.CompletedAt, cadence)
			if seen[key] {
				duplicates++
			}
			seen[key] = true
		}
	}
	if duplicates > 0 {
		return fmt.Errorf("found %d completions sharing a period with another", duplicates)
	}
	return nil
}

func (cmd *DoctorCmd) checkBackups(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found (run 'habitual backup create')")
	}
	return nil
}

func (cmd *DoctorCmd) checkClock() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock appears to be wrong: %s", now.Format(time.RFC3339))
	}
	if _, offset := now.Zone(); offset < -14*3600 || offset > 14*3600 {
		return fmt.Errorf("timezone offset out of range: %d seconds", offset)
	}
	return nil
}
