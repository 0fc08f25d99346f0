package domain

import "testing"

func TestOperations_Order(t *testing.T) {
	want := []Operation{OpUnion, OpIntersection, OpDifference, OpXOR}
	got := Operations()
	if len(got) != len(want) {
		t.Fatalf("expected %d operations, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Op != want[i] {
			t.Errorf("operations[%d] = %s, want %s", i, got[i].Op, want[i])
		}
	}
}

func TestOperations_ReturnsCopy(t *testing.T) {
	ops := Operations()
	ops[0].Op = "merge"
	if Operations()[0].Op != OpUnion {
		t.Fatal("Operations() must not expose the registry")
	}
}

func TestAcceptsSubject_OnlyDifference(t *testing.T) {
	for _, s := range Operations() {
		if got := s.Op.AcceptsSubject(); got != (s.Op == OpDifference) {
			t.Errorf("%s.AcceptsSubject() = %v", s.Op, got)
		}
	}
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		op     Operation
		inside []bool
		want   bool
	}{
		{OpUnion, []bool{false, false}, false},
		{OpUnion, []bool{false, true}, true},
		{OpIntersection, []bool{true, true, true}, true},
		{OpIntersection, []bool{true, false, true}, false},
		{OpIntersection, nil, false},
		{OpDifference, []bool{true, false, false}, true},
		{OpDifference, []bool{true, false, true}, false},
		{OpDifference, []bool{false, false}, false},
		{OpXOR, []bool{true, true}, false},
		{OpXOR, []bool{true, true, true}, true},
		{OpXOR, []bool{false, true}, true},
		{Operation("merge"), []bool{true}, false},
	}
	for _, c := range cases {
		if got := c.op.Evaluate(c.inside); got != c.want {
			t.Errorf("%s.Evaluate(%v) = %v, want %v", c.op, c.inside, got, c.want)
		}
	}
}
