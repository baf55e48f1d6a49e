// Package store provides the key-addressable live-meeting record store.
//
// The pipeline needs find-by-meet-number, find-by-(name, start date),
// existence checks, and create-or-update-in-place. Memory implements that
// contract; Snapshots adds JSON persistence between CLI runs so consecutive
// scrapes can be diffed. The single-threaded orchestrator is the only writer,
// but access is still mutex-guarded.
package store
