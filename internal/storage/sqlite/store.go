package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitual/internal/migration"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/migrations"
)

// Store is the local single-file backend.
type Store struct {
	path string
	db   *sql.DB
	feed *storage.Feed
}

func New(path string) *Store {
	return &Store{
		path: path,
		feed: storage.NewFeed(),
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'habitual init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.validateSchemaVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	_, err = migration.NewRunner(s.db, subFS).Apply(nil)
	return err
}

func (s *Store) validateSchemaVersion() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	return migration.NewRunner(s.db, subFS).ValidateVersion()
}

// DB exposes the underlying connection for diagnostics.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate applies pending migrations, reporting progress through logFn.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return 0, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS).Apply(logFn)
}

func (s *Store) Changes() *storage.Feed {
	return s.feed
}

func (s *Store) GetConfigPath() string {
	return s.path
}
