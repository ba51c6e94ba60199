package gql

import (
	"fmt"
	"strings"
)

// matchingBrace finds the first '{' at or after "from" and returns the offset
// of the '}' closing it, counting nesting on the way. The scan is purely
// textual - braces inside string literals or comments will throw the count
// off, same as any other part of this package.
func matchingBrace(query string, from int) (int, error) {
	open := strings.IndexByte(query[from:], '{')
	if open < 0 {
		return 0, fmt.Errorf("no selection set found after offset %d: %w", from, ErrMalformedDocument)
	}
	open += from

	depth := 1
	for i := open + 1; i < len(query); i++ {
		switch query[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unbalanced braces in selection set starting at offset %d: %w", open, ErrMalformedDocument)
}
