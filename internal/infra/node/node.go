// Package node exposes build metadata stamped at link time via -ldflags.
package node

var Version = "development"
var CommitHash = "unknown"
