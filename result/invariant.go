package result

import "fmt"

// AnalysisInvariantError is panicked, never returned, when an analysis
// detects a violated internal invariant rather than an ordinary
// expected-to-fail condition: a non-commutative meet, a call edge whose
// argument count doesn't match the callee's parameter count.
// cmd/analyzer's dispatch loop is the only place that recovers one,
// turning it into a diagnosed process exit — every other caller lets it
// propagate.
type AnalysisInvariantError struct {
	Analysis string
	Detail   string
}

func (e *AnalysisInvariantError) Error() string {
	return fmt.Sprintf("%s: invariant violated: %s", e.Analysis, e.Detail)
}

// Invariant panics with an AnalysisInvariantError built from analysis and
// a formatted detail message.
func Invariant(analysis, format string, args ...any) {
	panic(&AnalysisInvariantError{Analysis: analysis, Detail: fmt.Sprintf(format, args...)})
}
