package compile

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/flarebyte/seshat-compendium/internal/aggregate"
	"github.com/flarebyte/seshat-compendium/internal/config"
	"github.com/flarebyte/seshat-compendium/internal/luafilter"
)

// envPrefix namespaces environment overrides, e.g. SESHAT_SOURCE.
const envPrefix = "SESHAT"

const (
	keySource         = "source"
	keyOut            = "out"
	keyManifest       = "manifest"
	keySuffix         = "suffix"
	keyGitignore      = "gitignore"
	keyFollowSymlinks = "follow-symlinks"
	keyFilter         = "filter"
	keyFilterTimeout  = "filter-timeout"
	keyNormalize      = "normalize"
	keyWorkers        = "workers"
	keyTimeout        = "timeout"
	keyProgress       = "progress"
	keyProgressEvery  = "progress-interval"
	keyVerbose        = "verbose"
	keyQuiet          = "quiet"
)

// settings is the fully resolved input of one command run.
type settings struct {
	Source         string
	Out            string
	Manifest       string
	Suffixes       []string
	Gitignore      bool
	FollowSymlinks bool
	Filter         string
	FilterTimeout  time.Duration
	Normalize      string
	Workers        int
	Timeout        time.Duration
	Progress       bool
	ProgressEvery  time.Duration
	Verbose        bool
	Quiet          bool
}

func addDiscoveryFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "Path to config file (.cue)")
	fs.StringP(keySource, "s", aggregate.DefaultSourceRoot, "Source directory to walk")
	fs.StringSlice(keySuffix, aggregate.DefaultSuffixes, "File name suffixes to keep (repeatable)")
	fs.Bool(keyGitignore, false, "Skip paths ignored by .gitignore files")
	fs.Bool(keyFollowSymlinks, false, "Descend into symlinked directories and read symlinked files")
	fs.String(keyFilter, "", "Lua expression over name and ext that must return true to keep a file")
	fs.Duration(keyFilterTimeout, luafilter.DefaultTimeout, "Time limit for one Lua filter evaluation")
	fs.Duration(keyTimeout, 0, "Abort the whole run after this duration (0 disables)")
	fs.BoolP(keyVerbose, "v", false, "Log every processed file")
	fs.BoolP(keyQuiet, "q", false, "Only log errors")
}

// resolveSettings layers flags over SESHAT_* environment variables over the
// CUE config over flag defaults.
func resolveSettings(cmd *cobra.Command) (settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return settings{}, err
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath = v.GetString("config")
	}
	if cfgPath != "" {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return settings{}, usageError(err)
		}
		if err := v.MergeConfigMap(configLayer(cfg)); err != nil {
			return settings{}, usageError(err)
		}
	}

	s := settings{
		Source:         v.GetString(keySource),
		Out:            v.GetString(keyOut),
		Manifest:       v.GetString(keyManifest),
		Suffixes:       v.GetStringSlice(keySuffix),
		Gitignore:      v.GetBool(keyGitignore),
		FollowSymlinks: v.GetBool(keyFollowSymlinks),
		Filter:         v.GetString(keyFilter),
		FilterTimeout:  v.GetDuration(keyFilterTimeout),
		Normalize:      v.GetString(keyNormalize),
		Workers:        v.GetInt(keyWorkers),
		Timeout:        v.GetDuration(keyTimeout),
		Progress:       v.GetBool(keyProgress),
		ProgressEvery:  v.GetDuration(keyProgressEvery),
		Verbose:        v.GetBool(keyVerbose),
		Quiet:          v.GetBool(keyQuiet),
	}
	// manifest never reads content, so its runs ignore normalize entirely.
	if cmd.Flags().Lookup(keyNormalize) == nil {
		s.Normalize = config.NormalizePlain
	}
	if s.Normalize == "" {
		s.Normalize = config.NormalizePlain
	}
	if !config.IsNormalizeMode(s.Normalize) {
		return settings{}, usageError(fmt.Errorf("invalid normalize mode: %q (expected plain, markdown or none)", s.Normalize))
	}
	if s.Workers < 0 {
		return settings{}, usageError(fmt.Errorf("invalid --workers: %d (must be >= 0)", s.Workers))
	}
	if len(s.Suffixes) == 0 {
		return settings{}, usageError(fmt.Errorf("at least one --suffix is required"))
	}
	return s, nil
}

// configLayer maps the fields present in a CUE config onto flag keys.
func configLayer(c config.Config) map[string]any {
	m := map[string]any{}
	if c.Source.HasRoot {
		m[keySource] = c.Source.Root
	}
	if c.Output.HasOut {
		m[keyOut] = c.Output.Out
	}
	if c.Output.HasManifest {
		m[keyManifest] = c.Output.Manifest
	}
	if c.Discovery.HasSuffixes {
		m[keySuffix] = c.Discovery.Suffixes
	}
	if c.Discovery.HasGitignore {
		m[keyGitignore] = c.Discovery.Gitignore
	}
	if c.Discovery.HasFollowSymlinks {
		m[keyFollowSymlinks] = c.Discovery.FollowSymlinks
	}
	if c.Filter.HasInline {
		m[keyFilter] = c.Filter.Inline
	}
	if c.Filter.HasTimeoutMs {
		m[keyFilterTimeout] = time.Duration(c.Filter.TimeoutMs) * time.Millisecond
	}
	if c.Normalize.HasMode {
		m[keyNormalize] = c.Normalize.Mode
	}
	if c.Workers.HasCount {
		m[keyWorkers] = c.Workers.Count
	}
	if c.Timeout.HasMs {
		m[keyTimeout] = time.Duration(c.Timeout.Ms) * time.Millisecond
	}
	return m
}

func newLogger(s settings, w io.Writer) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	switch {
	case s.Quiet:
		l.SetLevel(logrus.ErrorLevel)
	case s.Verbose:
		l.SetLevel(logrus.DebugLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}
	return logrus.NewEntry(l).WithField("cmd", "seshat")
}

// aggregatorConfig turns resolved settings into an aggregate.Config.
func aggregatorConfig(s settings, log *logrus.Entry) (aggregate.Config, error) {
	pred := aggregate.SuffixPredicate(s.Suffixes...)
	if s.Filter != "" {
		f, err := luafilter.Compile(s.Filter, s.FilterTimeout)
		if err != nil {
			return aggregate.Config{}, usageError(err)
		}
		pred = aggregate.All(pred, f.Predicate(log))
	}
	normalize := aggregate.Normalize
	switch s.Normalize {
	case config.NormalizeMarkdown:
		normalize = aggregate.NormalizeMarkdown
	case config.NormalizeNone:
		normalize = aggregate.Identity
	}
	return aggregate.Config{
		SourceRoot:       s.Source,
		OutputPath:       s.Out,
		Predicate:        pred,
		Normalize:        normalize,
		RespectGitignore: s.Gitignore,
		FollowSymlinks:   s.FollowSymlinks,
		Workers:          s.Workers,
		Timeout:          s.Timeout,
		Logger:           log,
	}, nil
}
