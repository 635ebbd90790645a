// Package satchel carries module-level metadata shared by the CLI and
// library consumers.
package satchel

// Version is the satchel release version.
const Version = "0.2.0"
