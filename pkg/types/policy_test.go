package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyGrants(t *testing.T) {
	p := &Policy{
		Owner: "alice",
		Read:  []string{"alice", "R:editors"},
		Write: []string{"bob"},
	}

	assert.Equal(t, []string{"alice"}, p.Grants(PolicyOwner))
	assert.Equal(t, []string{"alice", "R:editors"}, p.Grants(PolicyRead))
	assert.Equal(t, []string{"bob"}, p.Grants(PolicyWrite))
	assert.Nil(t, p.Grants(PolicyManage))
	assert.Nil(t, p.Grants("bogus"))
}

func TestPolicyGrantsEmptyOwner(t *testing.T) {
	p := &Policy{}
	assert.Nil(t, p.Grants(PolicyOwner))
}

func TestPolicySetGrants(t *testing.T) {
	p := &Policy{}

	p.SetGrants(PolicyRead, []string{"alice"})
	assert.Equal(t, []string{"alice"}, p.Read)

	p.SetGrants(PolicyOwner, []string{"bob", "ignored"})
	assert.Equal(t, "bob", p.Owner)

	p.SetGrants(PolicyOwner, nil)
	assert.Equal(t, "", p.Owner)
}

func TestPolicyAddGrant(t *testing.T) {
	p := &Policy{}

	p.AddGrant(PolicyRead, "alice")
	p.AddGrant(PolicyRead, "R:editors")
	assert.Equal(t, []string{"alice", "R:editors"}, p.Read)

	p.AddGrant(PolicyOwner, "carol")
	assert.Equal(t, "carol", p.Owner)
}

func TestPolicyKindsCoverEveryField(t *testing.T) {
	// Every kind must be readable and writable through the enumerated map.
	p := &Policy{}
	for _, kind := range PolicyKinds {
		p.SetGrants(kind, []string{"x"})
		assert.Equal(t, []string{"x"}, p.Grants(kind), "kind %s", kind)
	}
}
