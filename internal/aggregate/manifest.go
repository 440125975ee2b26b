package aggregate

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout renders GeneratedAt like JavaScript's toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

const (
	headerTitle   = "=== TS/TSX Content Compilation ==="
	contentMarker = "=== Content Starts Here ==="
)

// Manifest describes the file set of one run. It is computed from the sorted
// path list before any file is read, so unreadable files are still counted.
type Manifest struct {
	GeneratedAt   time.Time `yaml:"generatedAt"`
	SourceRoot    string    `yaml:"sourceRoot"`
	TotalFiles    int       `yaml:"totalFiles"`
	RelativePaths []string  `yaml:"relativePaths"`
}

func newManifest(absRoot string, sorted []string, now time.Time) (Manifest, error) {
	rels := make([]string, 0, len(sorted))
	for _, p := range sorted {
		rel, err := relativePath(absRoot, p)
		if err != nil {
			return Manifest{}, err
		}
		rels = append(rels, rel)
	}
	return Manifest{
		GeneratedAt:   now.UTC(),
		SourceRoot:    absRoot,
		TotalFiles:    len(rels),
		RelativePaths: rels,
	}, nil
}

func relativePath(absRoot, p string) (string, error) {
	rel, err := filepath.Rel(absRoot, p)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Header renders the manifest block that opens every artifact.
func (m Manifest) Header() string {
	var b strings.Builder
	b.WriteString(headerTitle + "\n")
	fmt.Fprintf(&b, "Generated on: %s\n", m.GeneratedAt.UTC().Format(TimestampLayout))
	fmt.Fprintf(&b, "Source folder: %s\n", m.SourceRoot)
	fmt.Fprintf(&b, "Total files found: %d\n", m.TotalFiles)
	b.WriteString("Files found in:\n")
	for _, rel := range m.RelativePaths {
		b.WriteString("- " + rel + "\n")
	}
	return b.String()
}
