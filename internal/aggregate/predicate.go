package aggregate

import "strings"

// Predicate reports whether a file with the given base name is kept.
// It may be called from several goroutines at once.
type Predicate func(name string) bool

// DefaultSuffixes keeps TypeScript sources. "tsx" has no leading dot, so a
// bare name such as "footsx" matches too; this mirrors the historical tool.
var DefaultSuffixes = []string{".ts", "tsx"}

// SuffixPredicate keeps names ending in any of the suffixes (case-sensitive).
func SuffixPredicate(suffixes ...string) Predicate {
	s := append([]string(nil), suffixes...)
	return func(name string) bool {
		for _, suf := range s {
			if strings.HasSuffix(name, suf) {
				return true
			}
		}
		return false
	}
}

// DefaultPredicate is SuffixPredicate(DefaultSuffixes...).
func DefaultPredicate() Predicate {
	return SuffixPredicate(DefaultSuffixes...)
}

// All keeps a name only when every non-nil predicate keeps it.
func All(preds ...Predicate) Predicate {
	return func(name string) bool {
		for _, p := range preds {
			if p != nil && !p(name) {
				return false
			}
		}
		return true
	}
}
