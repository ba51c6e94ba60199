package gql

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var (
	// fragment spread token, the name charset matches fragmentNameRe
	spreadRe = regexp.MustCompile(`\.\.\.[A-Za-z0-9]+`)
	// a blank line optionally holding nothing but whitespace
	blankLinesRe = regexp.MustCompile(`\n\s*\n`)
)

// RemoveDefinitions returns the document with every fragment definition cut
// out. Spread sites stay untouched for ResolveReferences. Each deletion
// shifts all offsets after it, so spans are recomputed against the current
// text right before every cut - this is required for correctness, not an
// optimization. Cuts happen in declaration order: fragmentInfo matches
// definitions by name prefix, so a name that prefixes a longer name declared
// earlier must not be cut before the exact longer match is gone.
func RemoveDefinitions(query string, t Table) (string, error) {
	seen := make(map[string]bool, len(t))
	for _, name := range FragmentNames(query) {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := t[name]; !ok {
			continue
		}
		info, err := fragmentInfo(query, name)
		if err != nil {
			return "", err
		}
		// for a typecast fragment End already points one past the closing
		// brace, cutting End+1 also eats the line break after it
		query = query[:info.Start] + query[min(info.End+1, len(query)):]
	}
	return collapseBlankLines(query), nil
}

// ResolveReferences substitutes fragment spreads with bodies from the table,
// iterating until none remain. A body may itself spread other fragments, so
// a single pass is not enough - every pass can expose spreads brought in by
// the previous one. len(t)+1 passes always suffice for an acyclic document;
// running out of passes means fragments spread each other in a cycle.
func ResolveReferences(query string, t Table, log *zap.Logger) (string, error) {
	maxPasses := len(t) + 1
	for pass := 1; ; pass++ {
		spreads := spreadRe.FindAllString(query, -1)
		log.Info("Fragment spreads remaining", zap.Int("pass", pass), zap.Int("count", len(spreads)))
		if len(spreads) == 0 {
			break
		}
		for _, spread := range spreads {
			if _, ok := t[strings.TrimPrefix(spread, "...")]; !ok {
				return "", fmt.Errorf("spread %s: %w", spread, ErrUndefinedFragment)
			}
		}
		if pass > maxPasses {
			return "", fmt.Errorf("spreads still unresolved after %d passes: %w", maxPasses, ErrCyclicFragment)
		}
		for name, body := range t {
			// names are alphanumeric by construction, safe to splice into a pattern
			re := regexp.MustCompile(`\.\.\.` + name + `\b`)
			query = re.ReplaceAllLiteralString(query, body)
		}
	}
	return strings.TrimSpace(collapseBlankLines(query)), nil
}

// Inline runs the whole pipeline: build the fragment table, remove fragment
// definitions, then substitute spreads to a fixpoint.
func Inline(query string, log *zap.Logger) (string, error) {
	t, err := BuildTable(query)
	if err != nil {
		return "", err
	}
	if query, err = RemoveDefinitions(query, t); err != nil {
		return "", err
	}
	return ResolveReferences(query, t, log)
}

// StripTypename removes every __typename line from the document. Apollo
// clients require __typename, so this is only done on explicit request and
// is not part of the inlining pipeline.
func StripTypename(query string) string {
	return strings.ReplaceAll(query, "__typename\n", "")
}

func collapseBlankLines(query string) string {
	return blankLinesRe.ReplaceAllString(query, "\n")
}
