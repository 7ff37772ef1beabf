package system

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
)

type MigrateCmd struct{}

// migrator is implemented by both storage backends.
type migrator interface {
	Migrate(logFn func(string)) (int, error)
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	store, ok := ctx.Store.(migrator)
	if !ok {
		return fmt.Errorf("storage backend does not support migrations")
	}

	count, err := store.Migrate(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
