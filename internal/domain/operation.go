package domain

// Operation is one of the four set-theoretic operations the tool exposes.
type Operation string

const (
	OpUnion        Operation = "union"
	OpIntersection Operation = "intersection"
	OpDifference   Operation = "difference"
	OpXOR          Operation = "xor"
)

// OperationSpec describes how a command is registered and how it combines operands.
type OperationSpec struct {
	Op    Operation
	Short string

	// AcceptsSubject is true only for difference, where the subject is the minuend.
	AcceptsSubject bool
}

var operations = []OperationSpec{
	{Op: OpUnion, Short: "Compute the union"},
	{Op: OpIntersection, Short: "Compute the intersection"},
	{Op: OpDifference, Short: "Compute the difference", AcceptsSubject: true},
	{Op: OpXOR, Short: "Compute the xor"},
}

// Operations returns the registered operations in command order.
func Operations() []OperationSpec {
	out := make([]OperationSpec, len(operations))
	copy(out, operations)
	return out
}

// Spec returns the registration details for op.
func (op Operation) Spec() (OperationSpec, bool) {
	for _, s := range operations {
		if s.Op == op {
			return s, true
		}
	}
	return OperationSpec{}, false
}

func (op Operation) String() string { return string(op) }

// AcceptsSubject reports whether the operation takes a -s/--subject value.
func (op Operation) AcceptsSubject() bool {
	s, ok := op.Spec()
	return ok && s.AcceptsSubject
}

// Evaluate reports whether a point belongs to the result, given whether it lies inside
// each operand. inside[0] is the first operand (the minuend for difference).
func (op Operation) Evaluate(inside []bool) bool {
	switch op {
	case OpUnion:
		for _, in := range inside {
			if in {
				return true
			}
		}
		return false

	case OpIntersection:
		if len(inside) == 0 {
			return false
		}
		for _, in := range inside {
			if !in {
				return false
			}
		}
		return true

	case OpDifference:
		if len(inside) == 0 || !inside[0] {
			return false
		}
		for _, in := range inside[1:] {
			if in {
				return false
			}
		}
		return true

	case OpXOR:
		n := 0
		for _, in := range inside {
			if in {
				n++
			}
		}
		return n%2 == 1

	default:
		return false
	}
}
