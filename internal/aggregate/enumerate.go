package aggregate

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// walker lists a tree one directory at a time, fanning out one goroutine per
// subdirectory and joining them before merging their results. Nothing
// mutable is shared between the goroutines.
type walker struct {
	keep           Predicate
	gitignore      bool
	followSymlinks bool
}

// dirVisit is the immutable state handed to each directory goroutine.
type dirVisit struct {
	path      string
	domain    []string
	patterns  []gitignore.Pattern
	ancestors []string
}

// enumerate returns the sorted absolute paths of every kept file under root.
func (w *walker) enumerate(ctx context.Context, absRoot string) ([]string, error) {
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, &Error{Kind: ErrNotFound, Path: absRoot, Err: err}
	}
	if !info.IsDir() {
		return nil, &Error{Kind: ErrNotFound, Path: absRoot, Err: errNotDirectory}
	}
	files, err := w.walkDir(ctx, dirVisit{path: absRoot})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &Error{Kind: ErrEmptyResult, Path: absRoot}
	}
	sort.Strings(files)
	return files, nil
}

func (w *walker) walkDir(ctx context.Context, v dirVisit) ([]string, error) {
	if err := cancelledErr(ctx); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(v.path)
	if err != nil {
		return nil, &Error{Kind: ErrDirectoryRead, Path: v.path, Err: err}
	}
	patterns := v.patterns
	if w.gitignore {
		patterns = withGitignore(patterns, v.path, v.domain)
	}
	matcher := newIgnoreMatcher(patterns)
	ancestors := v.ancestors
	if w.followSymlinks {
		if canon, err := filepath.EvalSymlinks(v.path); err == nil {
			ancestors = append(ancestors[:len(ancestors):len(ancestors)], canon)
		}
	}

	var files []string
	var children []dirVisit
	for _, ent := range entries {
		name := ent.Name()
		full := filepath.Join(v.path, name)
		domain := append(v.domain[:len(v.domain):len(v.domain)], name)

		isDir, isFile := w.classify(ent, full, ancestors)
		if !isDir && !isFile {
			continue
		}
		if matcher != nil && matcher.Match(domain, isDir) {
			continue
		}
		if isDir {
			children = append(children, dirVisit{path: full, domain: domain, patterns: patterns, ancestors: ancestors})
			continue
		}
		if w.keep(name) {
			files = append(files, full)
		}
	}
	if len(children) == 0 {
		return files, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	results := make([][]string, len(children))
	errs := make([]error, len(children))
	var wg sync.WaitGroup
	for i, child := range children {
		wg.Add(1)
		go func(i int, child dirVisit) {
			defer wg.Done()
			res, err := w.walkDir(ctx, child)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			results[i] = res
		}(i, child)
	}
	wg.Wait()
	if err := firstError(errs); err != nil {
		return nil, err
	}
	for _, res := range results {
		files = append(files, res...)
	}
	return files, nil
}

// classify reports whether an entry is walked as a directory or is a file
// candidate. Symlinks are skipped unless followSymlinks is set; a symlinked
// directory that resolves to one of its own ancestors is skipped.
func (w *walker) classify(ent fs.DirEntry, full string, ancestors []string) (isDir bool, isFile bool) {
	mode := ent.Type()
	switch {
	case mode.IsDir():
		return true, false
	case mode.IsRegular():
		return false, true
	case mode&fs.ModeSymlink != 0 && w.followSymlinks:
		target, err := os.Stat(full)
		if err != nil {
			return false, false
		}
		if !target.IsDir() {
			return false, target.Mode().IsRegular()
		}
		canon, err := filepath.EvalSymlinks(full)
		if err != nil || slices.Contains(ancestors, canon) {
			return false, false
		}
		return true, false
	default:
		return false, false
	}
}
