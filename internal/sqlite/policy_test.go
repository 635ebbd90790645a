package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

func TestSplitJoinPrincipal(t *testing.T) {
	name, ptype := splitPrincipal("alice")
	assert.Equal(t, "alice", name)
	assert.Equal(t, principalUser, ptype)

	name, ptype = splitPrincipal("R:editors")
	assert.Equal(t, "editors", name)
	assert.Equal(t, principalRole, ptype)

	assert.Equal(t, "alice", joinPrincipal("alice", principalUser))
	assert.Equal(t, "R:editors", joinPrincipal("editors", principalRole))
}

func TestPolicyPersistsMixedPrincipals(t *testing.T) {
	s := newTestStore(t)

	bag := types.NewBag("guarded")
	bag.Policy.Read = []string{"alice", "R:editors"}
	require.NoError(t, s.BagPut(bag))

	// Two principal rows, classified by the R: prefix.
	var users, roles int
	require.NoError(t, s.db.QueryRow(
		"SELECT COUNT(*) FROM principal WHERE name = ? AND type = ?", "alice", principalUser,
	).Scan(&users))
	require.NoError(t, s.db.QueryRow(
		"SELECT COUNT(*) FROM principal WHERE name = ? AND type = ?", "editors", principalRole,
	).Scan(&roles))
	assert.Equal(t, 1, users)
	assert.Equal(t, 1, roles)

	got, err := s.BagGet("guarded")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "R:editors"}, got.Policy.Read)
}

func TestPolicyPrincipalsDeduplicated(t *testing.T) {
	s := newTestStore(t)

	// The same principal across kinds and containers maps to one row.
	bag := types.NewBag("one")
	bag.Policy.Read = []string{"alice"}
	bag.Policy.Write = []string{"alice"}
	require.NoError(t, s.BagPut(bag))

	other := types.NewBag("two")
	other.Policy.Manage = []string{"alice"}
	require.NoError(t, s.BagPut(other))

	var count int
	require.NoError(t, s.db.QueryRow(
		"SELECT COUNT(*) FROM principal WHERE name = ?", "alice",
	).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestPolicyRePutDropsStaleGrants(t *testing.T) {
	s := newTestStore(t)

	bag := types.NewBag("rotating")
	bag.Policy.Read = []string{"alice", "bob"}
	bag.Policy.Write = []string{"carol"}
	require.NoError(t, s.BagPut(bag))

	bag.Policy = types.Policy{Read: []string{"bob"}}
	require.NoError(t, s.BagPut(bag))

	got, err := s.BagGet("rotating")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, got.Policy.Read)
	assert.Empty(t, got.Policy.Write)
}

func TestPolicyOwnerSingleton(t *testing.T) {
	s := newTestStore(t)

	recipe := types.NewRecipe("owned")
	recipe.Policy.Owner = "R:custodians"
	require.NoError(t, s.RecipePut(recipe))

	got, err := s.RecipeGet("owned")
	require.NoError(t, err)
	assert.Equal(t, "R:custodians", got.Policy.Owner)
}

func TestPolicyAllKindsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	bag := types.NewBag("full")
	bag.Policy = types.Policy{
		Owner:  "alice",
		Read:   []string{"alice", "bob"},
		Write:  []string{"bob"},
		Create: []string{"R:editors"},
		Delete: []string{"alice"},
		Manage: []string{"R:admins"},
		Change: []string{"carol"},
	}
	require.NoError(t, s.BagPut(bag))

	got, err := s.BagGet("full")
	require.NoError(t, err)
	assert.Equal(t, bag.Policy, got.Policy)
}
