// Package sqlite provides the public API for the SQLite satchel backend.
// It exposes the factory function for opening stores while keeping
// implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/satchel/internal/sqlite"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Open opens a SQLite-backed store at cfg.DBPath, creating the schema on
// first use.
//
// Example:
//
//	store, err := sqlite.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DBPath:  "satchel.db",
//	})
//	defer store.Close()
func Open(cfg types.Config) (types.Store, error) {
	return sqlite.Open(cfg)
}
