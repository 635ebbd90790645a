package types

import (
	"strings"
	"time"
)

// TimestampLayout is the 14-digit wiki timestamp format (UTC).
const TimestampLayout = "20060102150405"

// Tiddler is a versioned content item identified by (Bag, Title). Revision
// holds the revision number the tiddler was hydrated at; on put it is
// assigned by the store. Modified/Created are 14-digit UTC timestamps.
//
// Fields whose names start with "server." are transient server-side
// annotations and are never persisted.
type Tiddler struct {
	Title    string            `json:"title"`
	Bag      string            `json:"bag"`
	Revision int64             `json:"revision,omitempty"`
	Modifier string            `json:"modifier,omitempty"`
	Modified string            `json:"modified,omitempty"`
	Creator  string            `json:"creator,omitempty"`
	Created  string            `json:"created,omitempty"`
	Type     string            `json:"type,omitempty"`
	Tags     []string          `json:"tags,omitempty"`
	Text     string            `json:"text,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

// NewTiddler returns a tiddler in the given bag with an empty field map.
func NewTiddler(title, bag string) *Tiddler {
	return &Tiddler{
		Title:  title,
		Bag:    bag,
		Fields: map[string]string{},
	}
}

// Binary reports whether the tiddler's content is binary: it has a content
// type that is neither the literal "None" nor any text/ type. Binary
// content is base64-encoded in storage; the same predicate must hold on
// read for the round trip to be lossless.
func (t *Tiddler) Binary() bool {
	return t.Type != "" && t.Type != "None" && !strings.HasPrefix(t.Type, "text/")
}

// ReservedFieldPrefix marks fields that are never persisted.
const ReservedFieldPrefix = "server."

// CurrentTimestamp returns the current UTC time in the 14-digit wiki format.
func CurrentTimestamp() string {
	return time.Now().UTC().Format(TimestampLayout)
}
