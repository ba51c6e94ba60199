package gql

import "regexp"

var operationRe = regexp.MustCompile(`\b(query|mutation|subscription)\s+([A-Za-z0-9_]+)\s*[({]`)

// OperationName returns the name of the first named operation in the
// document or an empty string when the operation is anonymous. Same textual
// matching caveats as the rest of the package apply.
func OperationName(query string) string {
	if m := operationRe.FindStringSubmatch(query); m != nil {
		return m[2]
	}
	return ""
}
