package aggregate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// withGitignore returns parent patterns extended by the .gitignore found in
// dir, if any. The parent slice is never mutated so concurrent children can
// share it.
func withGitignore(parent []gitignore.Pattern, dir string, domain []string) []gitignore.Pattern {
	b, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return parent
	}
	out := append([]gitignore.Pattern(nil), parent...)
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, gitignore.ParsePattern(line, domain))
	}
	return out
}

func newIgnoreMatcher(patterns []gitignore.Pattern) gitignore.Matcher {
	if len(patterns) == 0 {
		return nil
	}
	return gitignore.NewMatcher(patterns)
}
