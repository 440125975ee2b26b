package config

import (
	"reflect"
	"strings"
	"testing"
)

func TestLoad_Full(t *testing.T) {
	cfg := writeCUE(t, `
configVersion: "1"
source: root: "./apps/nextjs/src"
output: {
	out:      "./apps/docs/app/api/chat/combined_content_ts.txt"
	manifest: "./apps/docs/app/api/chat/manifest.yaml"
}
discovery: {
	suffixes:       [".ts", ".tsx"]
	gitignore:      true
	followSymlinks: false
}
filter: {
	inline:    "name ~= 'env.d.ts'"
	timeoutMs: 50
}
normalize: mode: "markdown"
workers:   4
timeoutMs: 30000
`)
	c, err := Load(cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !c.Source.HasRoot || c.Source.Root != "./apps/nextjs/src" {
		t.Fatalf("unexpected source: %+v", c.Source)
	}
	if c.Output.Out != "./apps/docs/app/api/chat/combined_content_ts.txt" || !c.Output.HasManifest {
		t.Fatalf("unexpected output: %+v", c.Output)
	}
	if !reflect.DeepEqual(c.Discovery.Suffixes, []string{".ts", ".tsx"}) || !c.Discovery.Gitignore || !c.Discovery.HasFollowSymlinks || c.Discovery.FollowSymlinks {
		t.Fatalf("unexpected discovery: %+v", c.Discovery)
	}
	if c.Filter.Inline != "name ~= 'env.d.ts'" || c.Filter.TimeoutMs != 50 {
		t.Fatalf("unexpected filter: %+v", c.Filter)
	}
	if c.Normalize.Mode != NormalizeMarkdown || c.Workers.Count != 4 || c.Timeout.Ms != 30000 {
		t.Fatalf("unexpected misc: %+v %+v %+v", c.Normalize, c.Workers, c.Timeout)
	}
}

func TestLoad_MinimalLeavesPresenceFlagsUnset(t *testing.T) {
	c, err := Load(writeCUE(t, `configVersion: "1"`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Source.HasRoot || c.Output.HasOut || c.Discovery.HasSuffixes || c.Filter.HasInline || c.Normalize.HasMode || c.Workers.HasCount || c.Timeout.HasMs {
		t.Fatalf("expected no optional fields: %+v", c)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "missing version", content: `source: root: "x"`, want: "missing required field: configVersion"},
		{name: "version type", content: `configVersion: 1`, want: "invalid type for field: configVersion (expected string)"},
		{name: "negative workers", content: "configVersion: \"1\"\nworkers: -1", want: "invalid workers"},
		{name: "negative timeout", content: "configVersion: \"1\"\ntimeoutMs: -5", want: "invalid timeoutMs"},
		{name: "empty suffixes", content: "configVersion: \"1\"\ndiscovery: suffixes: []", want: "invalid discovery.suffixes"},
		{name: "syntax", content: "configVersion: \"1\"\n{{{", want: "invalid config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeCUE(t, tt.content))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoad_KeepsUnknownNormalizeMode(t *testing.T) {
	c, err := Load(writeCUE(t, "configVersion: \"1\"\nnormalize: mode: \"html\""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !c.Normalize.HasMode || c.Normalize.Mode != "html" || IsNormalizeMode(c.Normalize.Mode) {
		t.Fatalf("unexpected normalize: %+v", c.Normalize)
	}
}

func TestLoad_RejectsNonCUE(t *testing.T) {
	_, err := Load("seshat.yaml")
	if err == nil || err.Error() != "unsupported config format: expected .cue" {
		t.Fatalf("unexpected error: %v", err)
	}
}
