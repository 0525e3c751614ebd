package types

// Result is what a system's Execute reports about the remainder of the
// current runlevel invocation.
type Result int

const (
	// Continue lets the next system in the runlevel run.
	Continue Result = iota
	// Halt skips every system after this one for the current invocation only.
	// Later invocations are unaffected.
	Halt
)

func (r Result) String() string {
	if r == Halt {
		return "halt"
	}
	return "continue"
}
