package rules

import (
	"fmt"
	"strings"
)

// Turn is the direction the ant turns on a cell.
type Turn uint8

const (
	Left Turn = iota
	Right
)

// String returns the single-letter form used in rule sequences.
func (t Turn) String() string {
	if t == Right {
		return "R"
	}
	return "L"
}

// States is the number of cell states a rule covers.
const States = 4

// Rule maps each cell state to a turn. Sequence[s] is the turn taken on a
// cell in state s.
type Rule struct {
	Name        string
	Description string
	Sequence    [States]Turn
}

// Built-in presets.
var (
	Classic = mustParse("Classic (RLRL)", "Chaotic expansion", "RLRL")
	Weaver  = mustParse("Weaver (LLRR)", "Symmetric woven patterns", "LLRR")
	Spinner = mustParse("Spinner (RLLR)", "Spirals and growth", "RLLR")
	Bouncer = mustParse("Bouncer (RRLR)", "Bounces and builds", "RRLR")
	Boxer   = mustParse("Boxer (LRRL)", "Confined boxing patterns", "LRRL")
)

func init() {
	for _, r := range []Rule{Classic, Weaver, Spinner, Bouncer, Boxer} {
		MustRegister(r)
	}
}

// Parse builds a rule from a sequence string such as "RLRL".
// Letters are case-insensitive; separators '-' and spaces are ignored.
func Parse(name, description, sequence string) (Rule, error) {
	r := Rule{Name: name, Description: description}

	letters := strings.Map(func(c rune) rune {
		if c == '-' || c == ' ' {
			return -1
		}
		return c
	}, strings.ToUpper(sequence))

	if len(letters) != States {
		return Rule{}, fmt.Errorf("%w: sequence %q must have %d turns", ErrInvalidRule, sequence, States)
	}
	for i, c := range letters {
		switch c {
		case 'L':
			r.Sequence[i] = Left
		case 'R':
			r.Sequence[i] = Right
		default:
			return Rule{}, fmt.Errorf("%w: sequence %q has turn %q", ErrInvalidRule, sequence, c)
		}
	}

	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

func mustParse(name, description, sequence string) Rule {
	r, err := Parse(name, description, sequence)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate checks the rule can be registered.
func (r Rule) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidRule)
	}
	for i, t := range r.Sequence {
		if t != Left && t != Right {
			return fmt.Errorf("%w: %q state %d has turn %d", ErrInvalidRule, r.Name, i, t)
		}
	}
	return nil
}

// TurnFor returns the turn for a cell state. States wrap modulo 4.
func (r Rule) TurnFor(state uint8) Turn {
	return r.Sequence[state%States]
}

// SequenceString returns the sequence joined with dashes, e.g. "R-L-R-L".
func (r Rule) SequenceString() string {
	parts := make([]string, States)
	for i, t := range r.Sequence {
		parts[i] = t.String()
	}
	return strings.Join(parts, "-")
}
