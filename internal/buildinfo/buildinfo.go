// Package buildinfo exposes version metadata for the CLI. Values can be
// overridden at build time via -ldflags; empty values fall back to the cli
// package so older release scripts keep working.
package buildinfo

import (
	"strings"

	"github.com/flarebyte/seshat-compendium/cli"
)

var (
	// Version is the semantic version or custom string.
	Version = "dev"
	// Commit is the VCS commit hash (optional).
	Commit = ""
	// Date is the build time (optional).
	Date = ""
	// BuiltBy is an optional builder identifier.
	BuiltBy = ""
)

// Summary returns a concise single-line version string such as
// "1.2.3 (commit=abcdef0, date=2026-01-01)".
func Summary() string {
	v := firstNonEmpty(Version, cli.Version, "dev")
	d := firstNonEmpty(Date, cli.Date)

	parts := make([]string, 0, 2)
	if Commit != "" {
		c := Commit
		if len(c) > 7 {
			c = c[:7]
		}
		parts = append(parts, "commit="+c)
	}
	if d != "" {
		parts = append(parts, "date="+d)
	}
	if len(parts) > 0 {
		v += " (" + strings.Join(parts, ", ") + ")"
	}
	return v
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
