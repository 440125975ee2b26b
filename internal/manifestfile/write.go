// Package manifestfile writes a run manifest as canonical YAML, either as a
// sidecar next to the artifact or to any writer.
package manifestfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/flarebyte/seshat-compendium/internal/aggregate"
)

// Marshal returns canonical YAML bytes for m. Keys keep a fixed order and
// relativePaths stays in manifest order.
func Marshal(m aggregate.Manifest) ([]byte, error) {
	top := &yaml.Node{Kind: yaml.MappingNode}
	top.Content = append(top.Content,
		scalarNode("generatedAt"), scalarNode(m.GeneratedAt.UTC().Format(aggregate.TimestampLayout)),
		scalarNode("sourceRoot"), scalarNode(m.SourceRoot),
		scalarNode("totalFiles"), intNode(m.TotalFiles),
		scalarNode("relativePaths"), sequenceNode(m.RelativePaths),
	)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(top); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	out = append(out, '\n')
	return out, nil
}

// Write writes the manifest to path, creating parent directories.
func Write(path string, m aggregate.Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Read parses a manifest previously produced by Marshal.
func Read(path string) (aggregate.Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return aggregate.Manifest{}, err
	}
	var raw struct {
		GeneratedAt   string   `yaml:"generatedAt"`
		SourceRoot    string   `yaml:"sourceRoot"`
		TotalFiles    int      `yaml:"totalFiles"`
		RelativePaths []string `yaml:"relativePaths"`
	}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return aggregate.Manifest{}, err
	}
	m := aggregate.Manifest{
		SourceRoot:    raw.SourceRoot,
		TotalFiles:    raw.TotalFiles,
		RelativePaths: raw.RelativePaths,
	}
	if raw.GeneratedAt != "" {
		t, err := time.Parse(aggregate.TimestampLayout, raw.GeneratedAt)
		if err != nil {
			return aggregate.Manifest{}, err
		}
		m.GeneratedAt = t
	}
	return m, nil
}

func scalarNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func intNode(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}
}

func sequenceNode(items []string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode}
	for _, it := range items {
		n.Content = append(n.Content, scalarNode(it))
	}
	return n
}
