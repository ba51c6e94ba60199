// Package gql inlines named fragments in GraphQL query documents: every
// fragment spread is replaced with the fragment body and fragment definitions
// are removed, producing a single self-contained query.
//
// This is deliberately not a GraphQL parser. Fragments are located with
// brace-depth scanning and light pattern matching over the document text, so
// braces or the word "on" inside string literals and comments are not
// recognized as such and will corrupt the result. For hand-written and
// tool-generated queries this does not come up in practice.
package gql

import (
	"fmt"
	"regexp"
	"strings"
)

// a name is an identifier squeezed between the "fragment" keyword and the
// type condition
var fragmentNameRe = regexp.MustCompile(`fragment ([A-Za-z0-9]+) on`)

// FragmentInfo locates a single fragment definition inside the document.
//
// Start is the offset of the "fragment" keyword. BodyStart is where the
// substitutable body begins. For a typecast fragment (the normal GraphQL
// shape with a type condition) the body starts at the "on" keyword and End
// points one past the closing brace so that the brace stays in the slice -
// such body is substituted as an inline fragment. Without a type condition
// the body is just the selection inside the braces and End is the offset of
// the closing brace itself.
type FragmentInfo struct {
	Start     int
	BodyStart int
	End       int
	Typecast  bool
}

// FragmentNames returns names of all fragments defined in the document in
// declaration order.
func FragmentNames(query string) []string {
	var names []string
	for _, m := range fragmentNameRe.FindAllStringSubmatch(query, -1) {
		names = append(names, m[1])
	}
	return names
}

// fragmentInfo computes the definition span of the named fragment against
// the current document text. Offsets are only valid until the document
// changes.
func fragmentInfo(query, name string) (FragmentInfo, error) {
	start := strings.Index(query, "fragment "+name)
	if start < 0 {
		return FragmentInfo{}, fmt.Errorf("fragment %s: definition not found: %w", name, ErrMalformedDocument)
	}

	end, err := matchingBrace(query, start)
	if err != nil {
		return FragmentInfo{}, fmt.Errorf("fragment %s: %w", name, err)
	}

	info := FragmentInfo{
		Start:     start,
		BodyStart: strings.IndexByte(query[start:], '{') + start + 1,
		End:       end,
	}

	// "on" must be a word of its own rather than a part of some identifier,
	// hence the spaces around it in the search
	if on := strings.Index(query[start:info.BodyStart], " on "); on >= 0 {
		info.BodyStart = start + on + 1
		info.End++ // keep the closing brace in body slices
		info.Typecast = true
	}
	return info, nil
}

// fragmentBody extracts the substitution text for the named fragment. A
// typecast body reads "on Type { ... }" and gets the spread prefix so that
// substitution produces a valid inline fragment.
func fragmentBody(query, name string) (string, error) {
	info, err := fragmentInfo(query, name)
	if err != nil {
		return "", err
	}
	body := query[info.BodyStart:info.End]
	if info.Typecast {
		body = "... " + body
	}
	return body, nil
}

// Table maps fragment names to their substitution bodies. Bodies are stored
// verbatim - a body may itself spread other fragments, those are taken care
// of by ResolveReferences later.
type Table map[string]string

// BuildTable extracts bodies of all fragments defined in the document.
// Duplicate fragment definitions are not valid GraphQL and are not guarded
// against - the first definition found wins.
func BuildTable(query string) (Table, error) {
	t := make(Table)
	for _, name := range FragmentNames(query) {
		body, err := fragmentBody(query, name)
		if err != nil {
			return nil, err
		}
		t[name] = body
	}
	return t, nil
}
