package schema

import "fmt"

// Cardinality is the participation marker attached to a relationship participant.
type Cardinality int

const (
	// Star is zero or more; it is the default when no marker is written.
	Star Cardinality = iota
	// One is exactly one.
	One
	// Plus is one or more.
	Plus
)

func (c Cardinality) String() string {
	switch c {
	case One:
		return "1"
	case Plus:
		return "+"
	default:
		return "*"
	}
}

// ParseCardinality converts a marker ("1", "+" or "*") to a Cardinality.
func ParseCardinality(s string) (Cardinality, error) {
	switch s {
	case "1":
		return One, nil
	case "+":
		return Plus, nil
	case "*", "":
		return Star, nil
	}
	return Star, fmt.Errorf("invalid cardinality %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Cardinality) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Cardinality) UnmarshalText(text []byte) error {
	parsed, err := ParseCardinality(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
