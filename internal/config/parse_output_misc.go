package config

import "cuelang.org/go/cue"

// parseOutputSection extracts optional output.* fields.
func parseOutputSection(v cue.Value) Output {
	var o Output
	o.HasOut = lookupString(v, "output.out", &o.Out)
	o.HasManifest = lookupString(v, "output.manifest", &o.Manifest)
	return o
}

// parseNormalizeSection extracts optional normalize.mode.
func parseNormalizeSection(v cue.Value) Normalize {
	var n Normalize
	n.HasMode = lookupString(v, "normalize.mode", &n.Mode)
	return n
}

// parseWorkersSection extracts optional workers count.
func parseWorkersSection(v cue.Value) Workers {
	var w Workers
	w.HasCount = lookupInt(v, "workers", &w.Count)
	return w
}

// parseTimeoutSection extracts optional timeoutMs.
func parseTimeoutSection(v cue.Value) Timeout {
	var t Timeout
	t.HasMs = lookupInt(v, "timeoutMs", &t.Ms)
	return t
}
