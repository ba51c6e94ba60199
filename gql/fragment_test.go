package gql

import (
	"errors"
	"strings"
	"testing"
)

func TestFragmentNames(t *testing.T) {
	query := `query Q { ...Friend ...Pet2 }
fragment Friend on User { id name }
fragment Pet2 on Animal { kind }
`
	names := FragmentNames(query)
	if len(names) != 2 {
		t.Fatalf("FragmentNames() = %v, want 2 names", names)
	}
	if names[0] != "Friend" || names[1] != "Pet2" {
		t.Errorf("FragmentNames() = %v, want [Friend Pet2] in declaration order", names)
	}
}

func TestFragmentNames_None(t *testing.T) {
	if names := FragmentNames("query { a b c }"); names != nil {
		t.Errorf("FragmentNames() = %v, want nil", names)
	}
}

func TestFragmentInfo_Typecast(t *testing.T) {
	query := "query Q { ...Friend }\nfragment Friend on User { id name }\n"

	info, err := fragmentInfo(query, "Friend")
	if err != nil {
		t.Fatalf("fragmentInfo() error = %v", err)
	}
	if !info.Typecast {
		t.Error("fragmentInfo() Typecast = false, want true")
	}
	if !(info.Start < info.BodyStart && info.BodyStart <= info.End) {
		t.Errorf("span ordering violated: Start=%d BodyStart=%d End=%d", info.Start, info.BodyStart, info.End)
	}
	if !strings.HasPrefix(query[info.Start:], "fragment Friend") {
		t.Errorf("Start points at %q", query[info.Start:info.Start+8])
	}
	// body starts at the "on" keyword and keeps the closing brace
	if got := query[info.BodyStart:info.End]; got != "on User { id name }" {
		t.Errorf("body slice = %q, want %q", got, "on User { id name }")
	}
	if query[info.End-1] != '}' {
		t.Errorf("End-1 points at %q, want '}'", query[info.End-1])
	}
}

func TestFragmentInfo_PlainShape(t *testing.T) {
	// not a shape valid GraphQL produces, but the typecast detection must
	// not trigger when the definition header carries no type condition
	query := "fragment Naked{ x y } unrelated on words"

	info, err := fragmentInfo(query, "Naked")
	if err != nil {
		t.Fatalf("fragmentInfo() error = %v", err)
	}
	if info.Typecast {
		t.Error("fragmentInfo() Typecast = true, want false")
	}
	if query[info.End] != '}' {
		t.Errorf("End points at %q, want '}'", query[info.End])
	}

	body, err := fragmentBody(query, "Naked")
	if err != nil {
		t.Fatalf("fragmentBody() error = %v", err)
	}
	if body != " x y " {
		t.Errorf("fragmentBody() = %q, want %q", body, " x y ")
	}
}

func TestFragmentInfo_Malformed(t *testing.T) {
	t.Run("unbalanced braces", func(t *testing.T) {
		_, err := fragmentInfo("fragment F on T { a { b }", "F")
		if !errors.Is(err, ErrMalformedDocument) {
			t.Fatalf("fragmentInfo() error = %v, want ErrMalformedDocument", err)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := fragmentInfo("query { a }", "Ghost")
		if !errors.Is(err, ErrMalformedDocument) {
			t.Fatalf("fragmentInfo() error = %v, want ErrMalformedDocument", err)
		}
	})
}

func TestFragmentBody_Typecast(t *testing.T) {
	query := "fragment F on Type { x y }"
	body, err := fragmentBody(query, "F")
	if err != nil {
		t.Fatalf("fragmentBody() error = %v", err)
	}
	if body != "... on Type { x y }" {
		t.Errorf("fragmentBody() = %q, want %q", body, "... on Type { x y }")
	}
}

func TestBuildTable(t *testing.T) {
	query := `query Q { ...Outer }
fragment Outer on T { ...Inner }
fragment Inner on U { z }
`
	table, err := BuildTable(query)
	if err != nil {
		t.Fatalf("BuildTable() error = %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("BuildTable() size = %d, want 2", len(table))
	}
	// bodies are stored verbatim, nested spreads stay unresolved
	if table["Outer"] != "... on T { ...Inner }" {
		t.Errorf("Outer body = %q", table["Outer"])
	}
	if table["Inner"] != "... on U { z }" {
		t.Errorf("Inner body = %q", table["Inner"])
	}
}

func TestBuildTable_Malformed(t *testing.T) {
	_, err := BuildTable("fragment F on T { a b")
	if !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("BuildTable() error = %v, want ErrMalformedDocument", err)
	}
}
