// Policy normalization between types.Policy and principal/policy rows.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Principal type discriminators stored in the principal and policy tables.
const (
	principalUser = "U"
	principalRole = "R"
)

// splitPrincipal classifies a principal identifier: "R:editors" is the
// role "editors", anything else is a user name.
func splitPrincipal(id string) (name, ptype string) {
	if rest, ok := strings.CutPrefix(id, types.RolePrefix); ok {
		return rest, principalRole
	}
	return id, principalUser
}

// joinPrincipal reconstructs the identifier, restoring the role prefix.
func joinPrincipal(name, ptype string) string {
	if ptype == principalRole {
		return types.RolePrefix + name
	}
	return name
}

// storePolicy rewrites the container's policy rows from the given policy.
// Existing rows are removed first, so ACL kinds dropped from the policy do
// not leave stale grants behind. Principal rows are deduplicated by
// (name, type) and inserted on first use.
func storePolicy(tx *sql.Tx, container string, policy *types.Policy) error {
	if _, err := tx.Exec("DELETE FROM policy WHERE container_name = ?", container); err != nil {
		return fmt.Errorf("clearing policy rows for %s: %w", container, err)
	}

	for _, kind := range types.PolicyKinds {
		for _, principal := range policy.Grants(kind) {
			name, ptype := splitPrincipal(principal)

			_, err := tx.Exec(
				"INSERT OR IGNORE INTO principal (name, type) VALUES (?, ?)",
				name, ptype,
			)
			if err != nil {
				return fmt.Errorf("ensuring principal %s/%s: %w", ptype, name, err)
			}

			_, err = tx.Exec(
				"INSERT OR IGNORE INTO policy (container_name, type, principal_name, principal_type) VALUES (?, ?, ?, ?)",
				container, kind, name, ptype,
			)
			if err != nil {
				return fmt.Errorf("inserting policy row %s/%s: %w", container, kind, err)
			}
		}
	}
	return nil
}

// loadPolicy hydrates the container's policy from its rows. Rows are read
// in insertion order, so principal lists come back in the order they were
// stored. A container with no rows hydrates to an empty policy.
func (s *Store) loadPolicy(container string) (types.Policy, error) {
	var policy types.Policy

	rows, err := s.db.Query(
		"SELECT type, principal_name, principal_type FROM policy WHERE container_name = ? ORDER BY rowid",
		container,
	)
	if err != nil {
		return policy, fmt.Errorf("querying policy for %s: %w", container, err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, name, ptype string
		if err := rows.Scan(&kind, &name, &ptype); err != nil {
			return policy, fmt.Errorf("scanning policy row: %w", err)
		}
		policy.AddGrant(kind, joinPrincipal(name, ptype))
	}
	if err := rows.Err(); err != nil {
		return policy, fmt.Errorf("iterating policy rows: %w", err)
	}
	return policy, nil
}

// deletePolicy removes the container's policy rows. Part of the explicit
// cascade when a bag or recipe is deleted.
func deletePolicy(tx *sql.Tx, container string) error {
	if _, err := tx.Exec("DELETE FROM policy WHERE container_name = ?", container); err != nil {
		return fmt.Errorf("deleting policy rows for %s: %w", container, err)
	}
	return nil
}
