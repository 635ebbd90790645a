package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Compile-time interface check: Store must implement types.Store.
var _ types.Store = (*Store)(nil)

// Store is a SQLite-backed types.Store. Each Store owns one database
// session; it must not be shared across concurrent callers without
// external synchronization. Open separate stores for concurrent use.
type Store struct {
	db *sql.DB

	// onWritten, when set, runs after a tiddler write or delete commits.
	onWritten types.TiddlerWritten
}

// Open validates the config, opens the database at cfg.DBPath, enables
// foreign-key enforcement, and creates the schema if this process has not
// already done so for that path.
func Open(cfg types.Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	path, err := filepath.Abs(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolving db path: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One session per store handle.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := ensureSchema(db, path); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// SetTiddlerWritten registers the write-notification hook. The hook
// observes tiddler writes after their transaction has committed.
func (s *Store) SetTiddlerWritten(hook types.TiddlerWritten) {
	s.onWritten = hook
}

// Close releases the store's database session. Idempotent.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// tiddlerWritten invokes the write-notification hook, if registered.
// Called only after the write's transaction has committed, so the hook
// always observes durable state.
func (s *Store) tiddlerWritten(tiddler *types.Tiddler) error {
	if s.onWritten == nil {
		return nil
	}
	return s.onWritten(tiddler)
}
