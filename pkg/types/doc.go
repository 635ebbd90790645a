// Package types defines the domain objects stored by satchel (Bag, Recipe,
// Tiddler, User, Policy), the Store interface implemented by storage
// backends, and the standard errors those backends return.
// See docs/ARCHITECTURE.md § Domain Model.
package types
