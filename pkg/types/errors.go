package types

import "errors"

// Store operation errors. A not-found error means the specific lookup that
// keyed the operation matched no rows; backends wrap these with the
// underlying cause so diagnostics survive the translation.
var (
	ErrBagNotFound     = errors.New("bag not found")
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrTiddlerNotFound = errors.New("tiddler not found")
	ErrUserNotFound    = errors.New("user not found")

	// ErrBagRequired is returned by TiddlerPut when the tiddler names no bag.
	ErrBagRequired = errors.New("bag required to save tiddler")

	// ErrMalformedRecipe is returned when a stored recipe line lacks the
	// "bag?filter" separator.
	ErrMalformedRecipe = errors.New("malformed recipe line")
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDBPathEmpty    = errors.New("db path must not be empty")
)
