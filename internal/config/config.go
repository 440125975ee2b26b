package config

import (
	"fmt"

	"cuelang.org/go/cue"
)

// Normalization modes accepted by normalize.mode.
const (
	NormalizePlain    = "plain"
	NormalizeMarkdown = "markdown"
	NormalizeNone     = "none"
)

// Config is the validated content of a .cue config file. Has* flags record
// which optional fields were present so callers can layer flags on top.
type Config struct {
	ConfigVersion string
	Source        Source
	Output        Output
	Discovery     Discovery
	Filter        Filter
	Normalize     Normalize
	Workers       Workers
	Timeout       Timeout
}

// Source holds source.root.
type Source struct {
	Root    string
	HasRoot bool
}

// Output holds output.out and output.manifest.
type Output struct {
	Out         string
	Manifest    string
	HasOut      bool
	HasManifest bool
}

// Discovery holds optional discovery settings.
type Discovery struct {
	Suffixes          []string
	Gitignore         bool
	FollowSymlinks    bool
	HasSuffixes       bool
	HasGitignore      bool
	HasFollowSymlinks bool
}

// Filter holds an optional inline Lua predicate.
type Filter struct {
	Inline       string
	TimeoutMs    int
	HasInline    bool
	HasTimeoutMs bool
}

// Normalize holds normalize.mode.
type Normalize struct {
	Mode    string
	HasMode bool
}

// Workers holds the optional read worker count.
type Workers struct {
	Count    int
	HasCount bool
}

// Timeout holds the optional whole-run deadline in milliseconds.
type Timeout struct {
	Ms    int
	HasMs bool
}

// Load compiles, validates and extracts a Config from a .cue file.
// Required field: configVersion (string, supported version).
func Load(path string) (Config, error) {
	v, err := compileCUE(path)
	if err != nil {
		return Config{}, err
	}
	return parse(v)
}

func parse(v cue.Value) (Config, error) {
	if err := requireStringField(v, "configVersion"); err != nil {
		return Config{}, err
	}
	var c Config
	if err := v.LookupPath(cue.ParsePath("configVersion")).Decode(&c.ConfigVersion); err != nil {
		return Config{}, fmt.Errorf("invalid value for configVersion: %v", err)
	}
	if !IsSupportedConfigVersion(c.ConfigVersion) {
		return Config{}, fmt.Errorf("unsupported configVersion: %q (supported: %s)", c.ConfigVersion, supportedVersionsList())
	}
	c.Source = parseSourceSection(v)
	c.Output = parseOutputSection(v)
	c.Discovery = parseDiscoverySection(v)
	c.Filter = parseFilterSection(v)
	c.Normalize = parseNormalizeSection(v)
	c.Workers = parseWorkersSection(v)
	c.Timeout = parseTimeoutSection(v)
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// validate checks ranges only. normalize.mode is checked by the commands that
// normalize content (see IsNormalizeMode).
func (c Config) validate() error {
	if c.Workers.HasCount && c.Workers.Count < 0 {
		return fmt.Errorf("invalid workers: %d (must be >= 0)", c.Workers.Count)
	}
	if c.Timeout.HasMs && c.Timeout.Ms < 0 {
		return fmt.Errorf("invalid timeoutMs: %d (must be >= 0)", c.Timeout.Ms)
	}
	if c.Filter.HasTimeoutMs && c.Filter.TimeoutMs < 0 {
		return fmt.Errorf("invalid filter.timeoutMs: %d (must be >= 0)", c.Filter.TimeoutMs)
	}
	if c.Discovery.HasSuffixes {
		if len(c.Discovery.Suffixes) == 0 {
			return fmt.Errorf("invalid discovery.suffixes: must not be empty")
		}
		for _, s := range c.Discovery.Suffixes {
			if s == "" {
				return fmt.Errorf("invalid discovery.suffixes: empty suffix")
			}
		}
	}
	return nil
}
