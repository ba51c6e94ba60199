package content

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// String returns a readable dump of the indexed fragment table in natural
// name order. It exists solely for manual inspection during debugging.
func (c *Content) String() string {
	if c == nil {
		return "<nil Content>"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Document: %s\n", c.SrcName)
	fmt.Fprintf(&sb, "Operation: %q\n", c.Operation)
	fmt.Fprintf(&sb, "Fragments: %d\n", len(c.Fragments))

	names := slices.Collect(maps.Keys(c.Fragments))
	sort.Sort(natural.StringSlice(names))

	for _, name := range names {
		fmt.Fprintf(&sb, "\n--- %s ---\n%s\n", name, c.Fragments[name])
	}
	return sb.String()
}
