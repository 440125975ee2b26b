package aggregate

import "strings"

// Artifact is the outcome of one run. Text is exactly what gets persisted.
type Artifact struct {
	Manifest Manifest
	Records  []NormalizedRecord
	Text     string
}

// Failed counts records that carry an inline error marker.
func (a Artifact) Failed() int {
	n := 0
	for _, r := range a.Records {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// render concatenates the manifest, the content marker and one section per
// record, then trims surrounding whitespace.
func render(m Manifest, records []NormalizedRecord) string {
	var b strings.Builder
	b.WriteString(m.Header())
	b.WriteString("\n" + contentMarker + "\n")
	for _, r := range records {
		if r.Err != nil {
			b.WriteString("\n\nError processing file " + r.AbsolutePath + ": " + r.failureMessage() + "\n\n")
			continue
		}
		b.WriteString("\n\n=== File: " + r.RelativePath + " ===\n\n")
		b.WriteString(r.NormalizedText)
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}
