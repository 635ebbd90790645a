// User operations: CRUD over the user table plus role rows.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// UserGet hydrates the named user with its roles.
// Returns ErrUserNotFound if no user row exists.
func (s *Store) UserGet(usersign string) (*types.User, error) {
	user := types.NewUser(usersign)

	err := s.db.QueryRow(
		"SELECT note, password FROM user WHERE usersign = ?", usersign,
	).Scan(&user.Note, &user.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s: %v", types.ErrUserNotFound, usersign, err)
		}
		return nil, fmt.Errorf("getting user %s: %w", usersign, err)
	}

	rows, err := s.db.Query(
		"SELECT name FROM role WHERE user = ? ORDER BY name", usersign,
	)
	if err != nil {
		return nil, fmt.Errorf("querying roles for %s: %w", usersign, err)
	}
	defer rows.Close()

	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scanning role: %w", err)
		}
		user.Roles = append(user.Roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roles: %w", err)
	}
	return user, nil
}

// UserPut upserts the user row and rewrites its role rows in one
// transaction.
func (s *Store) UserPut(user *types.User) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow("SELECT 1 FROM user WHERE usersign = ?", user.Usersign).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking user existence: %w", err)
	}

	if exists {
		_, err = tx.Exec(
			"UPDATE user SET note = ?, password = ? WHERE usersign = ?",
			user.Note, user.Password, user.Usersign,
		)
	} else {
		_, err = tx.Exec(
			"INSERT INTO user (usersign, note, password) VALUES (?, ?, ?)",
			user.Usersign, user.Note, user.Password,
		)
	}
	if err != nil {
		return fmt.Errorf("persisting user %s: %w", user.Usersign, err)
	}

	if _, err := tx.Exec("DELETE FROM role WHERE user = ?", user.Usersign); err != nil {
		return fmt.Errorf("clearing roles for %s: %w", user.Usersign, err)
	}
	for _, role := range user.Roles {
		_, err := tx.Exec(
			"INSERT OR IGNORE INTO role (user, name) VALUES (?, ?)",
			user.Usersign, role,
		)
		if err != nil {
			return fmt.Errorf("inserting role %s for %s: %w", role, user.Usersign, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing user %s: %w", user.Usersign, err)
	}
	return nil
}

// UserDelete removes the user and its role rows in one transaction.
// Returns ErrUserNotFound if no user row exists.
func (s *Store) UserDelete(usersign string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow("SELECT 1 FROM user WHERE usersign = ?", usersign).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s: %v", types.ErrUserNotFound, usersign, err)
		}
		return fmt.Errorf("checking user existence: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM role WHERE user = ?", usersign); err != nil {
		return fmt.Errorf("deleting roles for %s: %w", usersign, err)
	}
	if _, err := tx.Exec("DELETE FROM user WHERE usersign = ?", usersign); err != nil {
		return fmt.Errorf("deleting user %s: %w", usersign, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing user deletion %s: %w", usersign, err)
	}
	return nil
}

// ListUsers returns every stored user, fully hydrated. Order unspecified.
func (s *Store) ListUsers() ([]*types.User, error) {
	rows, err := s.db.Query("SELECT usersign FROM user")
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var usersigns []string
	for rows.Next() {
		var usersign string
		if err := rows.Scan(&usersign); err != nil {
			return nil, fmt.Errorf("scanning usersign: %w", err)
		}
		usersigns = append(usersigns, usersign)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	users := make([]*types.User, 0, len(usersigns))
	for _, usersign := range usersigns {
		user, err := s.UserGet(usersign)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}
