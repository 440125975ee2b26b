package config

import "cuelang.org/go/cue"

// parseSourceSection extracts optional source.root.
func parseSourceSection(v cue.Value) Source {
	var s Source
	s.HasRoot = lookupString(v, "source.root", &s.Root)
	return s
}

// parseDiscoverySection extracts optional discovery.* fields.
func parseDiscoverySection(v cue.Value) Discovery {
	var d Discovery
	dv := v.LookupPath(cue.ParsePath("discovery"))
	if !dv.Exists() {
		return d
	}
	sv := dv.LookupPath(cue.ParsePath("suffixes"))
	if sv.Exists() && sv.Kind() == cue.ListKind {
		if err := sv.Decode(&d.Suffixes); err == nil {
			d.HasSuffixes = true
		}
	}
	d.HasGitignore = lookupBool(dv, "gitignore", &d.Gitignore)
	d.HasFollowSymlinks = lookupBool(dv, "followSymlinks", &d.FollowSymlinks)
	return d
}

// parseFilterSection extracts optional filter.inline and filter.timeoutMs.
func parseFilterSection(v cue.Value) Filter {
	var f Filter
	f.HasInline = lookupString(v, "filter.inline", &f.Inline)
	f.HasTimeoutMs = lookupInt(v, "filter.timeoutMs", &f.TimeoutMs)
	return f
}
