// Tiddler operations: revision numbering, current/base resolution, field
// persistence, and content encoding.
//
// Every write of a tiddler appends an immutable revision row. The current
// state of a tiddler is its highest-numbered revision; the lowest-numbered
// revision supplies creation metadata (creator, created). Binary content
// (per Tiddler.Binary) is base64-encoded in the text column, and decoded
// on read under the same predicate.
package sqlite

import (
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// TiddlerGet hydrates the tiddler at the requested revision, or at its
// current revision when revision is zero. Returns ErrTiddlerNotFound if
// either the base or the target revision is missing.
func (s *Store) TiddlerGet(bag, title string, revision int64) (*types.Tiddler, error) {
	tiddler := types.NewTiddler(title, bag)

	// Base revision: creation metadata comes from the earliest revision.
	var baseModifier, baseModified string
	err := s.db.QueryRow(
		"SELECT modifier, modified FROM revision WHERE bag_name = ? AND tiddler_title = ? ORDER BY number ASC LIMIT 1",
		bag, title,
	).Scan(&baseModifier, &baseModified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s/%s: %v", types.ErrTiddlerNotFound, bag, title, err)
		}
		return nil, fmt.Errorf("getting base revision of %s/%s: %w", bag, title, err)
	}

	// Target revision: the requested number, or the highest.
	var row *sql.Row
	if revision > 0 {
		row = s.db.QueryRow(
			"SELECT number, modifier, modified, type, tags, text FROM revision WHERE bag_name = ? AND tiddler_title = ? AND number = ?",
			bag, title, revision,
		)
	} else {
		row = s.db.QueryRow(
			"SELECT number, modifier, modified, type, tags, text FROM revision WHERE bag_name = ? AND tiddler_title = ? ORDER BY number DESC LIMIT 1",
			bag, title,
		)
	}

	var tags, text string
	err = row.Scan(&tiddler.Revision, &tiddler.Modifier, &tiddler.Modified, &tiddler.Type, &tags, &text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s/%s revision %d: %v",
				types.ErrTiddlerNotFound, bag, title, revision, err)
		}
		return nil, fmt.Errorf("getting revision of %s/%s: %w", bag, title, err)
	}

	if tiddler.Binary() {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("decoding content of %s/%s: %w", bag, title, err)
		}
		tiddler.Text = string(decoded)
	} else {
		tiddler.Text = text
	}
	tiddler.Tags = types.ParseTags(tags)
	tiddler.Creator = baseModifier
	tiddler.Created = baseModified

	if err := s.loadFields(tiddler); err != nil {
		return nil, err
	}
	return tiddler, nil
}

// TiddlerPut appends a new revision for the tiddler and sets the assigned
// revision number on the input. The revision number is allocated by the
// global sequence; the input's Revision value is ignored. Returns
// ErrBagRequired if the tiddler names no bag. The write-notification hook
// runs after the commit.
func (s *Store) TiddlerPut(tiddler *types.Tiddler) error {
	tiddler.Revision = 0
	return s.putRevision(tiddler)
}

// TiddlerImport appends a revision carrying the input's explicit revision
// number. Used when re-deriving state from another store, e.g. replay or
// restore, where already-assigned numbers must be preserved. A zero
// Revision falls back to sequence allocation.
func (s *Store) TiddlerImport(tiddler *types.Tiddler) error {
	return s.putRevision(tiddler)
}

// putRevision stages the revision row and its field rows in one
// transaction, commits, records the assigned number on the tiddler, and
// then notifies the write hook.
func (s *Store) putRevision(tiddler *types.Tiddler) error {
	if tiddler.Bag == "" {
		return types.ErrBagRequired
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	text := tiddler.Text
	if tiddler.Binary() {
		text = base64.StdEncoding.EncodeToString([]byte(tiddler.Text))
	}
	tags := types.FormatTags(tiddler.Tags)

	number := tiddler.Revision
	if number > 0 {
		_, err = tx.Exec(
			"INSERT INTO revision (number, bag_name, tiddler_title, modifier, modified, type, tags, text) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			number, tiddler.Bag, tiddler.Title, tiddler.Modifier, tiddler.Modified, tiddler.Type, tags, text,
		)
		if err != nil {
			return fmt.Errorf("inserting revision %d of %s/%s: %w",
				number, tiddler.Bag, tiddler.Title, err)
		}
	} else {
		res, err := tx.Exec(
			"INSERT INTO revision (bag_name, tiddler_title, modifier, modified, type, tags, text) VALUES (?, ?, ?, ?, ?, ?, ?)",
			tiddler.Bag, tiddler.Title, tiddler.Modifier, tiddler.Modified, tiddler.Type, tags, text,
		)
		if err != nil {
			return fmt.Errorf("inserting revision of %s/%s: %w", tiddler.Bag, tiddler.Title, err)
		}
		number, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading assigned revision number: %w", err)
		}
	}

	for name, value := range tiddler.Fields {
		if strings.HasPrefix(name, types.ReservedFieldPrefix) {
			continue
		}
		_, err := tx.Exec(
			"INSERT INTO field (revision_number, name, value) VALUES (?, ?, ?)",
			number, name, value,
		)
		if err != nil {
			return fmt.Errorf("inserting field %s of %s/%s: %w",
				name, tiddler.Bag, tiddler.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing revision of %s/%s: %w", tiddler.Bag, tiddler.Title, err)
	}

	tiddler.Revision = number
	return s.tiddlerWritten(tiddler)
}

// TiddlerDelete removes the tiddler's entire revision history and the
// history's fields in one transaction. Returns ErrTiddlerNotFound if no
// revisions matched. The write-notification hook runs after the commit.
func (s *Store) TiddlerDelete(bag, title string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"DELETE FROM field WHERE revision_number IN (SELECT number FROM revision WHERE bag_name = ? AND tiddler_title = ?)",
		bag, title,
	)
	if err != nil {
		return fmt.Errorf("deleting fields of %s/%s: %w", bag, title, err)
	}

	res, err := tx.Exec(
		"DELETE FROM revision WHERE bag_name = ? AND tiddler_title = ?",
		bag, title,
	)
	if err != nil {
		return fmt.Errorf("deleting revisions of %s/%s: %w", bag, title, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("counting deleted revisions: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s/%s: nothing to delete", types.ErrTiddlerNotFound, bag, title)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing tiddler deletion %s/%s: %w", bag, title, err)
	}

	return s.tiddlerWritten(types.NewTiddler(title, bag))
}

// ListTiddlerRevisions returns the tiddler's revision numbers in
// descending order. Returns ErrTiddlerNotFound if there are none.
func (s *Store) ListTiddlerRevisions(bag, title string) ([]int64, error) {
	rows, err := s.db.Query(
		"SELECT number FROM revision WHERE bag_name = ? AND tiddler_title = ? ORDER BY number DESC",
		bag, title,
	)
	if err != nil {
		return nil, fmt.Errorf("listing revisions of %s/%s: %w", bag, title, err)
	}
	defer rows.Close()

	var numbers []int64
	for rows.Next() {
		var number int64
		if err := rows.Scan(&number); err != nil {
			return nil, fmt.Errorf("scanning revision number: %w", err)
		}
		numbers = append(numbers, number)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating revision numbers: %w", err)
	}

	if len(numbers) == 0 {
		return nil, fmt.Errorf("%w: %s/%s: no revisions", types.ErrTiddlerNotFound, bag, title)
	}
	return numbers, nil
}

// loadFields merges the resolved revision's field rows onto the tiddler.
func (s *Store) loadFields(tiddler *types.Tiddler) error {
	rows, err := s.db.Query(
		"SELECT name, value FROM field WHERE revision_number = ?",
		tiddler.Revision,
	)
	if err != nil {
		return fmt.Errorf("querying fields of %s/%s: %w", tiddler.Bag, tiddler.Title, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return fmt.Errorf("scanning field: %w", err)
		}
		tiddler.Fields[name] = value
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating fields: %w", err)
	}
	return nil
}
