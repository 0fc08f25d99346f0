package domain

import (
	"testing"
)

func TestSourceFromArg(t *testing.T) {
	cases := []struct {
		arg  string
		want SourceKind
	}{
		{"a.geojson", SourceFile},
		{"./dir/b.json", SourceFile},
		{`{"type":"Polygon","coordinates":[]}`, SourceLiteral},
		{`  {"type":"Feature"}`, SourceLiteral},
	}
	for _, c := range cases {
		if got := SourceFromArg(c.arg).Kind; got != c.want {
			t.Errorf("SourceFromArg(%q).Kind = %s, want %s", c.arg, got, c.want)
		}
	}
}

func TestInputSourceString(t *testing.T) {
	if StdinSource().String() != "stdin" {
		t.Error("stdin source should print as stdin")
	}
	if SourceFromArg("x.json").String() != "x.json" {
		t.Error("file source should print its path")
	}
	if SourceFromArg("{}").String() != "inline GeoJSON" {
		t.Error("literal source should not print its payload")
	}
}

func TestCheckPreconditions(t *testing.T) {
	cases := []struct {
		name    string
		req     InvocationRequest
		piped   bool
		wantMsg string
	}{
		{"no input at all", InvocationRequest{Operation: OpUnion}, false, MsgNoInput},
		{"no input difference", InvocationRequest{Operation: OpDifference}, false, MsgNoInput},
		{"difference with subject but no positionals", InvocationRequest{Operation: OpDifference, Options: Options{Subject: "s.json"}}, false, MsgNoInput},
		{"difference without subject", InvocationRequest{Operation: OpDifference, Positionals: []string{"a.json"}}, false, MsgDifferenceSubject},
		{"stdin only", InvocationRequest{Operation: OpUnion}, true, ""},
		{"positionals only", InvocationRequest{Operation: OpXOR, Positionals: []string{"a.json"}}, false, ""},
		{"difference with subject", InvocationRequest{Operation: OpDifference, Positionals: []string{"a.json"}, Options: Options{Subject: "s.json"}}, false, ""},
		{"difference with stdin", InvocationRequest{Operation: OpDifference, Positionals: []string{"a.json"}}, true, ""},
	}
	for _, c := range cases {
		err := CheckPreconditions(c.req, c.piped)
		if c.wantMsg == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", c.name, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		if !IsKind(err, KindPrecondition) {
			t.Errorf("%s: expected precondition kind, got %v", c.name, err)
		}
		if Message(err) != c.wantMsg {
			t.Errorf("%s: message = %q, want %q", c.name, Message(err), c.wantMsg)
		}
	}
}

func TestResolveInputs_StdinAndPositionals(t *testing.T) {
	req := InvocationRequest{Operation: OpUnion, Positionals: []string{"a.json", `{"type":"Polygon"}`}}
	set, err := ResolveInputs(req, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	srcs := set.Sources()
	if len(srcs) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(srcs))
	}
	if srcs[0].Kind != SourceStdin || srcs[1].Kind != SourceFile || srcs[2].Kind != SourceLiteral {
		t.Fatalf("unexpected source order: %+v", srcs)
	}
	if set.Subject != nil {
		t.Fatal("union must not carry a subject")
	}
}

func TestResolveInputs_SubjectRejectedOutsideDifference(t *testing.T) {
	req := InvocationRequest{Operation: OpUnion, Positionals: []string{"a.json"}, Options: Options{Subject: "s.json"}}
	_, err := ResolveInputs(req, false)
	if !IsKind(err, KindUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestResolveInputs_EmptyIsPrecondition(t *testing.T) {
	_, err := ResolveInputs(InvocationRequest{Operation: OpXOR, Positionals: []string{"  "}}, false)
	if !IsKind(err, KindPrecondition) {
		t.Fatalf("expected precondition error, got %v", err)
	}
}

func TestOperands_Difference(t *testing.T) {
	subj := SourceFromArg("s.json")

	withSubject := ResolvedInputSet{Stdin: true, Positionals: []InputSource{SourceFromArg("a.json")}, Subject: &subj}
	first, rest, ok := withSubject.Operands(OpDifference)
	if !ok || first.Value != "s.json" {
		t.Fatalf("expected subject as minuend, got %+v", first)
	}
	if len(rest) != 2 || rest[0].Kind != SourceStdin {
		t.Fatalf("expected stdin to join the subtrahends, got %+v", rest)
	}

	noSubject := ResolvedInputSet{Stdin: true, Positionals: []InputSource{SourceFromArg("a.json")}}
	first, rest, ok = noSubject.Operands(OpDifference)
	if !ok || first.Kind != SourceStdin {
		t.Fatalf("expected stdin as minuend, got %+v", first)
	}
	if len(rest) != 1 || rest[0].Value != "a.json" {
		t.Fatalf("unexpected rest: %+v", rest)
	}
}

func TestOperands_Empty(t *testing.T) {
	if _, _, ok := (ResolvedInputSet{}).Operands(OpUnion); ok {
		t.Fatal("expected ok=false for an empty set")
	}
}
