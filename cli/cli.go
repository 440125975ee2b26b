// Package cli holds build-time identifiers set by external release scripts:
//
//	-ldflags "-X 'github.com/flarebyte/seshat-compendium/cli.Version=1.2.3' -X 'github.com/flarebyte/seshat-compendium/cli.Date=2026-02-09'"
package cli

var (
	Version string
	Date    string
)
