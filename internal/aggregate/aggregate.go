// Package aggregate walks a source tree, keeps files whose names match a
// predicate, normalizes their content and assembles one deterministic text
// artifact headed by a manifest.
package aggregate

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// Defaults used when the matching Config field is empty.
const (
	DefaultSourceRoot = "./apps/nextjs/src"
	DefaultOutputPath = "./combined_content.txt"
)

// Config is everything one run needs. Zero values fall back to defaults.
type Config struct {
	SourceRoot string
	OutputPath string
	Predicate  Predicate
	Normalize  func(string) string

	RespectGitignore bool
	FollowSymlinks   bool
	// Workers bounds concurrent file reads. Defaults to runtime.NumCPU().
	Workers int
	// Timeout bounds the whole run when positive.
	Timeout time.Duration

	Logger   *logrus.Entry
	Progress Progress
	Stdout   io.Writer
	Now      func() time.Time
}

// Progress receives pipeline updates. Advance may be called concurrently.
type Progress interface {
	Stage(name string, total int)
	Advance(n int)
}

// Stage names reported to Progress.
const (
	StageEnumerate = "enumerate"
	StageRead      = "read"
	StageWrite     = "write"
)

// Aggregator runs the enumerate, sort, read, render and persist pipeline.
type Aggregator struct {
	cfg Config
	log *logrus.Entry
}

// New fills defaults into cfg and returns an Aggregator.
func New(cfg Config) *Aggregator {
	if cfg.SourceRoot == "" {
		cfg.SourceRoot = DefaultSourceRoot
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutputPath
	}
	if cfg.Predicate == nil {
		cfg.Predicate = DefaultPredicate()
	}
	if cfg.Normalize == nil {
		cfg.Normalize = Normalize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Progress == nil {
		cfg.Progress = noProgress{}
	}
	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	return &Aggregator{cfg: cfg, log: log}
}

// Config returns the effective configuration, defaults included.
func (a *Aggregator) Config() Config { return a.cfg }

// Enumerate returns the sorted absolute paths of all matching files.
func (a *Aggregator) Enumerate(ctx context.Context) ([]string, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	absRoot, err := filepath.Abs(a.cfg.SourceRoot)
	if err != nil {
		return nil, &Error{Kind: ErrNotFound, Path: a.cfg.SourceRoot, Err: err}
	}
	return a.enumerate(ctx, absRoot)
}

// Manifest enumerates the tree and returns its manifest without reading any
// file content.
func (a *Aggregator) Manifest(ctx context.Context) (Manifest, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	absRoot, err := filepath.Abs(a.cfg.SourceRoot)
	if err != nil {
		return Manifest{}, &Error{Kind: ErrNotFound, Path: a.cfg.SourceRoot, Err: err}
	}
	paths, err := a.enumerate(ctx, absRoot)
	if err != nil {
		return Manifest{}, err
	}
	return newManifest(absRoot, paths, a.cfg.Now())
}

// Build produces the artifact in memory without persisting it.
func (a *Aggregator) Build(ctx context.Context) (Artifact, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	return a.build(ctx)
}

// Aggregate builds the artifact and writes it to the output path. Nothing is
// written when enumeration fails or the run is cancelled.
func (a *Aggregator) Aggregate(ctx context.Context) (Artifact, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	art, err := a.build(ctx)
	if err != nil {
		a.log.WithError(err).Error("Failed to combine files")
		return Artifact{}, err
	}
	if err := cancelledErr(ctx); err != nil {
		return Artifact{}, err
	}
	a.cfg.Progress.Stage(StageWrite, 1)
	if err := writeArtifact(a.cfg.OutputPath, art.Text, a.cfg.Stdout); err != nil {
		a.log.WithError(err).Error("Failed to write artifact")
		return Artifact{}, err
	}
	a.cfg.Progress.Advance(1)
	a.log.WithFields(logrus.Fields{
		"files":  art.Manifest.TotalFiles,
		"failed": art.Failed(),
		"out":    a.cfg.OutputPath,
	}).Infof("Successfully combined %d TS/TSX files into %s", art.Manifest.TotalFiles, a.cfg.OutputPath)
	return art, nil
}

func (a *Aggregator) build(ctx context.Context) (Artifact, error) {
	absRoot, err := filepath.Abs(a.cfg.SourceRoot)
	if err != nil {
		return Artifact{}, &Error{Kind: ErrNotFound, Path: a.cfg.SourceRoot, Err: err}
	}
	paths, err := a.enumerate(ctx, absRoot)
	if err != nil {
		return Artifact{}, err
	}
	a.log.WithField("count", len(paths)).Infof("Found %d files", len(paths))

	m, err := newManifest(absRoot, paths, a.cfg.Now())
	if err != nil {
		return Artifact{}, err
	}
	records, err := a.readAll(ctx, paths, m.RelativePaths)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Manifest: m, Records: records, Text: render(m, records)}, nil
}

func (a *Aggregator) enumerate(ctx context.Context, absRoot string) ([]string, error) {
	a.log.WithField("root", absRoot).Infof("Searching for files in %s...", absRoot)
	a.cfg.Progress.Stage(StageEnumerate, 0)
	w := &walker{
		keep:           a.cfg.Predicate,
		gitignore:      a.cfg.RespectGitignore,
		followSymlinks: a.cfg.FollowSymlinks,
	}
	paths, err := w.enumerate(ctx, absRoot)
	if err != nil {
		return nil, err
	}
	a.cfg.Progress.Advance(len(paths))
	return paths, nil
}

// readAll reads and normalizes every path. A failed read becomes a record
// carrying the error; only cancellation aborts.
func (a *Aggregator) readAll(ctx context.Context, paths, rels []string) ([]NormalizedRecord, error) {
	a.cfg.Progress.Stage(StageRead, len(paths))
	records := runIndexedParallel(ctx, len(paths), a.cfg.Workers, func(i int) NormalizedRecord {
		defer a.cfg.Progress.Advance(1)
		if err := ctx.Err(); err != nil {
			return failedRecord(paths[i], rels[i], err)
		}
		fr, err := readFileRecord(paths[i], rels[i])
		if err != nil {
			a.log.WithError(err).WithField("file", rels[i]).Warn("Error processing file")
			return failedRecord(paths[i], rels[i], err)
		}
		a.log.WithField("file", rels[i]).Debugf("Processed: %s", rels[i])
		return fr.normalize(a.cfg.Normalize)
	})
	if err := cancelledErr(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

func (a *Aggregator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, a.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

type noProgress struct{}

func (noProgress) Stage(string, int) {}
func (noProgress) Advance(int)       {}

// Enumerate lists matching files under root with the default predicate.
func Enumerate(ctx context.Context, root string) ([]string, error) {
	return New(Config{SourceRoot: root}).Enumerate(ctx)
}

// Aggregate runs the full pipeline from root to outPath with defaults.
func Aggregate(ctx context.Context, root, outPath string) (Artifact, error) {
	return New(Config{SourceRoot: root, OutputPath: outPath}).Aggregate(ctx)
}
