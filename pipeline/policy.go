package pipeline

// Policy selects how execution-time failures propagate during Apply.
// The zero value means "not set": Apply falls back to the chain's
// default policy, then to PolicyStrict.
type Policy int

const (
	// PolicyDefault defers to the chain default, then to PolicyStrict.
	PolicyDefault Policy = iota

	// PolicyStrict aborts the whole Apply on the first failing step.
	// No result is produced; partial success is never hidden.
	PolicyStrict

	// PolicyCollecting records each failure with its step index,
	// substitutes the shape-appropriate empty value, and continues.
	// Opt-in for best-effort pipelines.
	PolicyCollecting

	// PolicyTracing behaves like PolicyStrict but first logs a
	// human-readable trace of every prior step's intermediate value
	// and shape.
	PolicyTracing
)

var policyNames = map[Policy]string{
	PolicyDefault:    "default",
	PolicyStrict:     "strict",
	PolicyCollecting: "collecting",
	PolicyTracing:    "tracing",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParsePolicy converts a policy name ("strict", "collecting",
// "tracing") to a Policy. Unknown names yield PolicyDefault and false.
func ParsePolicy(name string) (Policy, bool) {
	for p, n := range policyNames {
		if n == name && p != PolicyDefault {
			return p, true
		}
	}
	return PolicyDefault, false
}
