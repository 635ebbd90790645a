package types

// TiddlerWritten is a notification hook a host application registers on a
// store. The store invokes it after a tiddler write or delete has
// durably committed, passing the tiddler with its assigned revision. A
// hook error propagates to the caller but never unwinds the commit.
type TiddlerWritten func(tiddler *Tiddler) error

// Store is the persistence contract implemented by storage backends.
//
// A Store handle owns one database session and must not be shared across
// concurrent callers without external synchronization; open one handle per
// goroutine instead. Every mutating method is a single transaction: either
// all of its row changes commit, or none do.
//
// Lookup methods translate "no matching row" into the sentinel error for
// the entity being looked up (ErrBagNotFound and friends); every other
// error propagates unchanged after the in-flight transaction rolls back.
type Store interface {
	// ListBags returns every stored bag, fully hydrated, order unspecified.
	ListBags() ([]*Bag, error)
	// ListRecipes returns every stored recipe, order unspecified.
	ListRecipes() ([]*Recipe, error)
	// ListUsers returns every stored user, order unspecified.
	ListUsers() ([]*User, error)

	// ListBagTiddlers returns the current revision of every distinct
	// tiddler in the bag. Returns ErrBagNotFound if the bag does not exist.
	ListBagTiddlers(bag string) ([]*Tiddler, error)
	// ListTiddlerRevisions returns the tiddler's revision numbers in
	// descending order. Returns ErrTiddlerNotFound if there are none.
	ListTiddlerRevisions(bag, title string) ([]int64, error)

	// BagGet hydrates the named bag, policy included.
	BagGet(name string) (*Bag, error)
	// BagPut upserts the bag and rewrites its policy rows.
	BagPut(bag *Bag) error
	// BagDelete removes the bag, every revision of every tiddler it
	// contains, their fields, and the bag's policy rows.
	BagDelete(name string) error

	// RecipeGet hydrates the named recipe, policy included.
	RecipeGet(name string) (*Recipe, error)
	// RecipePut upserts the recipe and rewrites its policy rows.
	RecipePut(recipe *Recipe) error
	// RecipeDelete removes the recipe and its policy rows.
	RecipeDelete(name string) error

	// UserGet hydrates the named user, roles included.
	UserGet(usersign string) (*User, error)
	// UserPut upserts the user and rewrites its role rows.
	UserPut(user *User) error
	// UserDelete removes the user and its role rows.
	UserDelete(usersign string) error

	// TiddlerGet hydrates the tiddler at the given revision, or at its
	// current (highest-numbered) revision when revision is zero.
	TiddlerGet(bag, title string, revision int64) (*Tiddler, error)
	// TiddlerPut appends a new revision and sets the assigned number on
	// the input tiddler. Returns ErrBagRequired if the tiddler names no bag.
	TiddlerPut(tiddler *Tiddler) error
	// TiddlerDelete removes the tiddler's entire revision history.
	TiddlerDelete(bag, title string) error

	// Close releases the store's database session. Idempotent.
	Close() error
}
