package domain

import (
	"strings"
)

// Precondition messages shown to the user. They are matched verbatim by tests and scripts.
const (
	MsgNoInput           = "Please provide some GeoJSON via stdin or positionals."
	MsgDifferenceSubject = "difference requires either input on stdin or -s / --subject to be set."
	MsgSpecifyCommand    = "Please specify a command"
)

// Options are the named options of a single invocation.
type Options struct {
	OutputPath string // empty means standard output
	Subject    string // difference only
	Quiet      bool
}

// InvocationRequest is the parsed command line. It is built once and never mutated.
type InvocationRequest struct {
	Operation   Operation
	Positionals []string
	Options     Options
}

// SourceKind tells a reader where an input's bytes come from.
type SourceKind string

const (
	SourceStdin   SourceKind = "stdin"
	SourceFile    SourceKind = "file"
	SourceLiteral SourceKind = "literal"
)

// InputSource is one geometry input.
type InputSource struct {
	Kind  SourceKind
	Value string // file path or GeoJSON text; empty for stdin
}

// StdinSource is the standard-input source.
func StdinSource() InputSource {
	return InputSource{Kind: SourceStdin}
}

// SourceFromArg classifies a positional (or subject) argument. Inline GeoJSON starts with '{'.
func SourceFromArg(arg string) InputSource {
	if IsLiteral(arg) {
		return InputSource{Kind: SourceLiteral, Value: arg}
	}
	return InputSource{Kind: SourceFile, Value: arg}
}

// IsLiteral reports whether arg is inline GeoJSON rather than a path.
func IsLiteral(arg string) bool {
	return strings.HasPrefix(strings.TrimSpace(arg), "{")
}

func (s InputSource) String() string {
	switch s.Kind {
	case SourceStdin:
		return "stdin"
	case SourceLiteral:
		return "inline GeoJSON"
	default:
		return s.Value
	}
}

// ResolvedInputSet is the concrete set of geometry sources for one invocation.
type ResolvedInputSet struct {
	Stdin       bool
	Positionals []InputSource
	Subject     *InputSource
}

// Empty reports whether no source at all was resolved.
func (s ResolvedInputSet) Empty() bool {
	return !s.Stdin && len(s.Positionals) == 0 && s.Subject == nil
}

// Sources returns stdin (when piped) followed by the positionals.
func (s ResolvedInputSet) Sources() []InputSource {
	out := make([]InputSource, 0, len(s.Positionals)+1)
	if s.Stdin {
		out = append(out, StdinSource())
	}
	return append(out, s.Positionals...)
}

// Operands splits the set into the first operand and the rest. For difference the first
// operand is the minuend: the subject when given (stdin then counts as a subtrahend),
// otherwise stdin.
func (s ResolvedInputSet) Operands(op Operation) (first InputSource, rest []InputSource, ok bool) {
	if op == OpDifference && s.Subject != nil {
		return *s.Subject, s.Sources(), true
	}
	all := s.Sources()
	if len(all) == 0 {
		return InputSource{}, nil, false
	}
	return all[0], all[1:], true
}

// CheckPreconditions enforces the per-command input requirements, in order.
func CheckPreconditions(req InvocationRequest, stdinPiped bool) error {
	if !stdinPiped && len(req.Positionals) == 0 {
		return &OpError{
			Op:   "handler.preconditions",
			Kind: KindPrecondition,
			Err:  newMessageError(MsgNoInput),
		}
	}
	if req.Operation == OpDifference && !stdinPiped && strings.TrimSpace(req.Options.Subject) == "" {
		return &OpError{
			Op:   "handler.preconditions",
			Kind: KindPrecondition,
			Err:  newMessageError(MsgDifferenceSubject),
		}
	}
	return nil
}

// ResolveInputs builds the input set for req. It assumes CheckPreconditions passed.
func ResolveInputs(req InvocationRequest, stdinPiped bool) (ResolvedInputSet, error) {
	set := ResolvedInputSet{
		Stdin:       stdinPiped,
		Positionals: make([]InputSource, 0, len(req.Positionals)),
	}
	for _, p := range req.Positionals {
		if strings.TrimSpace(p) == "" {
			continue
		}
		set.Positionals = append(set.Positionals, SourceFromArg(p))
	}

	if subj := strings.TrimSpace(req.Options.Subject); subj != "" {
		if !req.Operation.AcceptsSubject() {
			return ResolvedInputSet{}, &OpError{
				Op:   "handler.resolve_inputs",
				Kind: KindUsage,
				Err:  newMessageError("--subject is only accepted by difference"),
			}
		}
		src := SourceFromArg(req.Options.Subject)
		set.Subject = &src
	}

	if set.Empty() {
		return ResolvedInputSet{}, &OpError{
			Op:   "handler.resolve_inputs",
			Kind: KindPrecondition,
			Err:  newMessageError(MsgNoInput),
		}
	}
	return set, nil
}

// WarnFunc receives non-fatal advisory messages.
type WarnFunc func(format string, args ...any)

// NopWarn discards warnings.
func NopWarn(string, ...any) {}
