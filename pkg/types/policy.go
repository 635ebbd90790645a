package types

// Policy kinds. Owner names at most one principal; every other kind holds a
// list of principals allowed to perform that action on the container.
const (
	PolicyOwner  = "owner"
	PolicyRead   = "read"
	PolicyWrite  = "write"
	PolicyCreate = "create"
	PolicyDelete = "delete"
	PolicyManage = "manage"
	PolicyChange = "change"
)

// PolicyKinds enumerates every kind, owner first. Backends iterate this
// instead of reflecting over Policy fields.
var PolicyKinds = []string{
	PolicyOwner,
	PolicyRead,
	PolicyWrite,
	PolicyCreate,
	PolicyDelete,
	PolicyManage,
	PolicyChange,
}

// RolePrefix marks a principal identifier as a role rather than a user.
const RolePrefix = "R:"

// Policy is the access-control list attached to a bag or recipe. Principal
// identifiers are bare user names, or role names carrying the "R:" prefix.
type Policy struct {
	Owner  string   `json:"owner,omitempty"`
	Read   []string `json:"read,omitempty"`
	Write  []string `json:"write,omitempty"`
	Create []string `json:"create,omitempty"`
	Delete []string `json:"delete,omitempty"`
	Manage []string `json:"manage,omitempty"`
	Change []string `json:"change,omitempty"`
}

// Grants returns the principals named by the given kind. Owner is returned
// as a zero- or one-element list. Unknown kinds return nil.
func (p *Policy) Grants(kind string) []string {
	switch kind {
	case PolicyOwner:
		if p.Owner == "" {
			return nil
		}
		return []string{p.Owner}
	case PolicyRead:
		return p.Read
	case PolicyWrite:
		return p.Write
	case PolicyCreate:
		return p.Create
	case PolicyDelete:
		return p.Delete
	case PolicyManage:
		return p.Manage
	case PolicyChange:
		return p.Change
	default:
		return nil
	}
}

// SetGrants replaces the principals for the given kind. For the owner kind
// only the first principal is kept. Unknown kinds are ignored.
func (p *Policy) SetGrants(kind string, principals []string) {
	switch kind {
	case PolicyOwner:
		if len(principals) > 0 {
			p.Owner = principals[0]
		} else {
			p.Owner = ""
		}
	case PolicyRead:
		p.Read = principals
	case PolicyWrite:
		p.Write = principals
	case PolicyCreate:
		p.Create = principals
	case PolicyDelete:
		p.Delete = principals
	case PolicyManage:
		p.Manage = principals
	case PolicyChange:
		p.Change = principals
	}
}

// AddGrant appends one principal to the given kind, preserving order.
func (p *Policy) AddGrant(kind, principal string) {
	if kind == PolicyOwner {
		p.Owner = principal
		return
	}
	p.SetGrants(kind, append(p.Grants(kind), principal))
}
