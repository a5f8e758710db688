package parser

// ErrorPolicy selects how many syntax errors Parse reports.
type ErrorPolicy int

const (
	// FirstError records only the first syntax error and ignores the rest.
	// Parsing still runs to the end of input.
	FirstError ErrorPolicy = iota
	// AllErrors records every mismatched token.
	AllErrors
)

func (p ErrorPolicy) String() string {
	if p == AllErrors {
		return "all"
	}
	return "first"
}

// Option configures parsing behavior.
type Option func(*options)

type options struct {
	policy ErrorPolicy
}

func defaultOptions() *options {
	return &options{policy: FirstError}
}

// WithErrorPolicy sets the syntax error reporting policy.
// If not specified, defaults to FirstError.
func WithErrorPolicy(policy ErrorPolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}
