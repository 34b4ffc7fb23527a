// Package cli implements the updown command tree.
//
// NewRootCommand wires configuration (environment variables via
// pkg/config), logging, the embedded message catalogs and the backend
// client, then dispatches to the list, inspect, delete, download, share and
// archive subcommands.
package cli
