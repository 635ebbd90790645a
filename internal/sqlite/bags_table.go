// Bag operations: CRUD over the bag table plus the explicit delete
// cascade to revisions, fields, and policy rows.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// BagGet hydrates the named bag with its policy.
// Returns ErrBagNotFound if no bag row exists.
func (s *Store) BagGet(name string) (*types.Bag, error) {
	bag := types.NewBag(name)

	err := s.db.QueryRow(
		"SELECT description FROM bag WHERE name = ?", name,
	).Scan(&bag.Desc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s: %v", types.ErrBagNotFound, name, err)
		}
		return nil, fmt.Errorf("getting bag %s: %w", name, err)
	}

	bag.Policy, err = s.loadPolicy(name)
	if err != nil {
		return nil, err
	}
	return bag, nil
}

// BagPut upserts the bag row and rewrites its policy rows in one
// transaction.
func (s *Store) BagPut(bag *types.Bag) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow("SELECT 1 FROM bag WHERE name = ?", bag.Name).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking bag existence: %w", err)
	}

	if exists {
		_, err = tx.Exec("UPDATE bag SET description = ? WHERE name = ?", bag.Desc, bag.Name)
	} else {
		_, err = tx.Exec("INSERT INTO bag (name, description) VALUES (?, ?)", bag.Name, bag.Desc)
	}
	if err != nil {
		return fmt.Errorf("persisting bag %s: %w", bag.Name, err)
	}

	if err := storePolicy(tx, bag.Name, &bag.Policy); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing bag %s: %w", bag.Name, err)
	}
	return nil
}

// BagDelete removes the bag, every revision of every tiddler it contains,
// those revisions' fields, and the bag's policy rows, all in one
// transaction. Returns ErrBagNotFound if no bag row exists.
func (s *Store) BagDelete(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow("SELECT 1 FROM bag WHERE name = ?", name).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s: %v", types.ErrBagNotFound, name, err)
		}
		return fmt.Errorf("checking bag existence: %w", err)
	}

	// Children before parent: fields, revisions, policy rows, bag row.
	_, err = tx.Exec(
		"DELETE FROM field WHERE revision_number IN (SELECT number FROM revision WHERE bag_name = ?)",
		name,
	)
	if err != nil {
		return fmt.Errorf("deleting fields for bag %s: %w", name, err)
	}
	if _, err := tx.Exec("DELETE FROM revision WHERE bag_name = ?", name); err != nil {
		return fmt.Errorf("deleting revisions for bag %s: %w", name, err)
	}
	if err := deletePolicy(tx, name); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM bag WHERE name = ?", name); err != nil {
		return fmt.Errorf("deleting bag %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing bag deletion %s: %w", name, err)
	}
	return nil
}

// ListBags returns every stored bag, fully hydrated. Order unspecified.
func (s *Store) ListBags() ([]*types.Bag, error) {
	rows, err := s.db.Query("SELECT name FROM bag")
	if err != nil {
		return nil, fmt.Errorf("listing bags: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning bag name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bags: %w", err)
	}

	bags := make([]*types.Bag, 0, len(names))
	for _, name := range names {
		bag, err := s.BagGet(name)
		if err != nil {
			return nil, err
		}
		bags = append(bags, bag)
	}
	return bags, nil
}

// ListBagTiddlers returns the current revision of every distinct tiddler
// title in the bag, fully hydrated. Returns ErrBagNotFound if the bag
// itself is absent; a bag with no tiddlers returns an empty slice.
func (s *Store) ListBagTiddlers(bag string) ([]*types.Tiddler, error) {
	var exists bool
	err := s.db.QueryRow("SELECT 1 FROM bag WHERE name = ?", bag).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s: %v", types.ErrBagNotFound, bag, err)
		}
		return nil, fmt.Errorf("checking bag existence: %w", err)
	}

	rows, err := s.db.Query(
		"SELECT tiddler_title, MAX(number) FROM revision WHERE bag_name = ? GROUP BY tiddler_title",
		bag,
	)
	if err != nil {
		return nil, fmt.Errorf("listing tiddlers in bag %s: %w", bag, err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		var current int64
		if err := rows.Scan(&title, &current); err != nil {
			return nil, fmt.Errorf("scanning tiddler title: %w", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tiddler titles: %w", err)
	}

	tiddlers := make([]*types.Tiddler, 0, len(titles))
	for _, title := range titles {
		tiddler, err := s.TiddlerGet(bag, title, 0)
		if err != nil {
			return nil, err
		}
		tiddlers = append(tiddlers, tiddler)
	}
	return tiddlers, nil
}
