package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

func TestBagPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	bag := types.NewBag("common")
	bag.Desc = "shared content"
	bag.Policy.Owner = "alice"
	bag.Policy.Read = []string{"alice", "R:editors"}
	require.NoError(t, s.BagPut(bag))

	got, err := s.BagGet("common")
	require.NoError(t, err)
	assert.Equal(t, "common", got.Name)
	assert.Equal(t, "shared content", got.Desc)
	assert.Equal(t, "alice", got.Policy.Owner)
	assert.Equal(t, []string{"alice", "R:editors"}, got.Policy.Read)
}

func TestBagGetNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.BagGet("absent")
	assert.ErrorIs(t, err, types.ErrBagNotFound)
}

func TestBagPutUpsert(t *testing.T) {
	s := newTestStore(t)

	bag := types.NewBag("common")
	bag.Desc = "before"
	require.NoError(t, s.BagPut(bag))

	bag.Desc = "after"
	require.NoError(t, s.BagPut(bag))

	got, err := s.BagGet("common")
	require.NoError(t, err)
	assert.Equal(t, "after", got.Desc)

	bags, err := s.ListBags()
	require.NoError(t, err)
	assert.Len(t, bags, 1)
}

func TestBagDeleteCascades(t *testing.T) {
	s := newTestStore(t)

	bag := types.NewBag("doomed")
	bag.Policy.Read = []string{"alice"}
	require.NoError(t, s.BagPut(bag))

	// Three tiddlers, two revisions each, fields on every revision.
	for _, title := range []string{"One", "Two", "Three"} {
		for i := 0; i < 2; i++ {
			tiddler := types.NewTiddler(title, "doomed")
			tiddler.Fields["k"] = "v"
			require.NoError(t, s.TiddlerPut(tiddler))
		}
	}

	require.NoError(t, s.BagDelete("doomed"))

	_, err := s.BagGet("doomed")
	assert.ErrorIs(t, err, types.ErrBagNotFound)

	for _, table := range []string{"revision", "field"} {
		var count int
		require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&count))
		assert.Zero(t, count, "%s rows should be gone", table)
	}
	var policies int
	require.NoError(t, s.db.QueryRow(
		"SELECT COUNT(*) FROM policy WHERE container_name = ?", "doomed",
	).Scan(&policies))
	assert.Zero(t, policies)
}

func TestBagDeleteNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.BagDelete("absent")
	assert.ErrorIs(t, err, types.ErrBagNotFound)
}

func TestListBags(t *testing.T) {
	s := newTestStore(t)

	bags, err := s.ListBags()
	require.NoError(t, err)
	assert.Empty(t, bags)

	require.NoError(t, s.BagPut(types.NewBag("a")))
	require.NoError(t, s.BagPut(types.NewBag("b")))

	bags, err = s.ListBags()
	require.NoError(t, err)
	assert.Len(t, bags, 2)
}

func TestListBagTiddlers(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.BagPut(types.NewBag("common")))

	// Two titles, several revisions; only current revisions come back.
	for i, title := range []string{"Alpha", "Alpha", "Beta"} {
		tiddler := types.NewTiddler(title, "common")
		tiddler.Text = string(rune('a' + i))
		require.NoError(t, s.TiddlerPut(tiddler))
	}

	tiddlers, err := s.ListBagTiddlers("common")
	require.NoError(t, err)
	require.Len(t, tiddlers, 2)

	byTitle := map[string]*types.Tiddler{}
	for _, tid := range tiddlers {
		byTitle[tid.Title] = tid
	}
	assert.Equal(t, "b", byTitle["Alpha"].Text)
	assert.Equal(t, "c", byTitle["Beta"].Text)
}

func TestListBagTiddlersEmptyBag(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.BagPut(types.NewBag("empty")))

	tiddlers, err := s.ListBagTiddlers("empty")
	require.NoError(t, err)
	assert.Empty(t, tiddlers)
}

func TestListBagTiddlersBagNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.ListBagTiddlers("absent")
	assert.ErrorIs(t, err, types.ErrBagNotFound)
}
