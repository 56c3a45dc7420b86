// Package seen provides a bounded in-memory record of player spawns and a
// command that reports when a player last spawned.
package seen
