package ifacefile

import (
	"fmt"
	"strings"
)

// ParseError reports a malformed line. The whole parse is aborted; no partial
// Document is returned alongside it.
type ParseError struct {
	Line     int    // 1-based number of the offending physical line
	Expected string // grammar construct that was expected
	Got      string // offending token, if any
}

func (e *ParseError) Error() string {
	if e.Got != "" {
		return fmt.Sprintf("line %d: expected %s, got %q", e.Line, e.Expected, e.Got)
	}
	return fmt.Sprintf("line %d: expected %s", e.Line, e.Expected)
}

// TargetNotFoundError reports a mutation that named an interface which does
// not exist, for operations that require pre-existence. Callers can use it to
// distinguish "already absent" from "found, no change needed".
type TargetNotFoundError struct {
	Key InterfaceKey
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("interface %s not found", e.Key)
}

// AmbiguousInterfaceError reports that an InterfaceKey is declared more than
// once. Parsing still yields a Document; mutations against the duplicated key
// refuse to guess and return this error instead.
type AmbiguousInterfaceError struct {
	Key   InterfaceKey
	Lines []int // source lines of every declaration
}

func (e *AmbiguousInterfaceError) Error() string {
	lines := make([]string, len(e.Lines))
	for n, l := range e.Lines {
		lines[n] = fmt.Sprintf("%d", l)
	}
	return fmt.Sprintf("interface %s declared %d times (lines %s)",
		e.Key, len(e.Lines), strings.Join(lines, ", "))
}
