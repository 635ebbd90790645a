// Package sqlite implements the SQLite storage backend for satchel.
// It maps bags, recipes, tiddler revisions, users, and access policies
// onto an eight-table relational schema.
// See docs/ARCHITECTURE.md § SQLite Backend.
package sqlite

import (
	"database/sql"
	"fmt"
	"sync"
)

// Schema DDL. Name columns are bounded to 128 characters, descriptions and
// tag lists to 1024, matching the persisted layout. Revision numbers come
// from a single AUTOINCREMENT sequence, so they are monotone across all
// tiddlers and never reused.
const (
	createBag = `CREATE TABLE IF NOT EXISTS bag (
    name VARCHAR(128) NOT NULL PRIMARY KEY,
    description VARCHAR(1024)
);`

	createRecipe = `CREATE TABLE IF NOT EXISTS recipe (
    name VARCHAR(128) NOT NULL PRIMARY KEY,
    description VARCHAR(1024),
    recipe_string TEXT NOT NULL DEFAULT ''
);`

	createRevision = `CREATE TABLE IF NOT EXISTS revision (
    number INTEGER PRIMARY KEY AUTOINCREMENT,
    bag_name VARCHAR(128) NOT NULL,
    tiddler_title VARCHAR(128) NOT NULL,
    modifier VARCHAR(128),
    modified CHAR(14),
    type VARCHAR(128),
    tags VARCHAR(1024),
    text TEXT NOT NULL DEFAULT '',
    UNIQUE (bag_name, tiddler_title, number),
    FOREIGN KEY (bag_name) REFERENCES bag(name)
        ON UPDATE CASCADE ON DELETE CASCADE
);`

	createField = `CREATE TABLE IF NOT EXISTS field (
    revision_number INTEGER NOT NULL,
    name VARCHAR(64) NOT NULL,
    value VARCHAR(1024),
    PRIMARY KEY (revision_number, name),
    FOREIGN KEY (revision_number) REFERENCES revision(number)
        ON UPDATE CASCADE ON DELETE CASCADE
);`

	createPrincipal = `CREATE TABLE IF NOT EXISTS principal (
    name VARCHAR(128) NOT NULL,
    type CHAR(1) NOT NULL,
    PRIMARY KEY (name, type)
);`

	// The policy key includes the principal so an ACL kind can durably hold
	// more than one principal; puts rewrite a container's rows wholesale.
	createPolicy = `CREATE TABLE IF NOT EXISTS policy (
    container_name VARCHAR(128) NOT NULL,
    type VARCHAR(12) NOT NULL,
    principal_name VARCHAR(128) NOT NULL,
    principal_type CHAR(1) NOT NULL,
    PRIMARY KEY (container_name, type, principal_name, principal_type),
    FOREIGN KEY (principal_name, principal_type)
        REFERENCES principal(name, type)
        ON UPDATE CASCADE ON DELETE CASCADE
);`

	createUser = `CREATE TABLE IF NOT EXISTS user (
    usersign VARCHAR(128) NOT NULL PRIMARY KEY,
    note VARCHAR(1024),
    password VARCHAR(128)
);`

	createRole = `CREATE TABLE IF NOT EXISTS role (
    user VARCHAR(128) NOT NULL,
    name VARCHAR(50) NOT NULL,
    PRIMARY KEY (user, name),
    FOREIGN KEY (user) REFERENCES user(usersign)
        ON UPDATE CASCADE ON DELETE CASCADE
);`
)

// Index DDL for the revision lookup paths.
const (
	idxRevisionBag   = `CREATE INDEX IF NOT EXISTS idx_revision_bag ON revision(bag_name);`
	idxRevisionTitle = `CREATE INDEX IF NOT EXISTS idx_revision_title ON revision(tiddler_title);`
	idxFieldName     = `CREATE INDEX IF NOT EXISTS idx_field_name ON field(name);`
	idxPolicyName    = `CREATE INDEX IF NOT EXISTS idx_policy_principal ON policy(principal_name);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	createBag,
	createRecipe,
	createRevision,
	createField,
	createPrincipal,
	createPolicy,
	createUser,
	createRole,
	idxRevisionBag,
	idxRevisionTitle,
	idxFieldName,
	idxPolicyName,
}

// schemaInit tracks which database paths have had their schema created in
// this process. Concurrently opened stores on the same path serialize here,
// so table creation runs at most once per database per process.
var schemaInit = struct {
	mu   sync.Mutex
	done map[string]bool
}{done: map[string]bool{}}

// ensureSchema creates the schema for the database at path if this process
// has not done so already. Idempotent and safe under concurrent Open calls.
func ensureSchema(db *sql.DB, path string) error {
	schemaInit.mu.Lock()
	defer schemaInit.mu.Unlock()

	if schemaInit.done[path] {
		return nil
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	schemaInit.done[path] = true
	return nil
}
