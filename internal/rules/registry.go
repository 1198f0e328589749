// Package rules provides the turning rules for the ant and a process-wide
// registry of them. Presets register themselves in init(); rules loaded from
// configuration are added at startup before any engine is created.
package rules

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrUnknownRule is returned when no registered rule matches a name.
	ErrUnknownRule = errors.New("rules: unknown rule")

	// ErrInvalidRule is returned for rules that cannot drive the ant.
	ErrInvalidRule = errors.New("rules: invalid rule")
)

var (
	registered = make(map[string]Rule)
	order      []string // registration order, presets first
	mu         sync.RWMutex
)

// Register adds a rule to the registry.
// Returns an error if the rule is malformed or the name is already taken.
func Register(r Rule) error {
	if err := r.Validate(); err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := registered[r.Name]; exists {
		return fmt.Errorf("%w: %q already registered", ErrInvalidRule, r.Name)
	}
	registered[r.Name] = r
	order = append(order, r.Name)
	return nil
}

// MustRegister is like Register but panics on error.
// Used for the built-in presets.
func MustRegister(r Rule) {
	if err := Register(r); err != nil {
		panic(err)
	}
}

// Lookup returns the rule with the given name.
func Lookup(name string) (Rule, error) {
	mu.RLock()
	defer mu.RUnlock()

	r, ok := registered[name]
	if !ok {
		return Rule{}, fmt.Errorf("%w %q", ErrUnknownRule, name)
	}
	return r, nil
}

// Resolve finds a rule from user input. An exact name wins; otherwise the
// query is matched case-insensitively against the full name and against the
// name's first word, so "weaver" selects "Weaver (LLRR)".
func Resolve(query string) (Rule, error) {
	if r, err := Lookup(query); err == nil {
		return r, nil
	}

	q := strings.ToLower(strings.TrimSpace(query))
	for _, r := range List() {
		name := strings.ToLower(r.Name)
		if name == q {
			return r, nil
		}
		if first, _, _ := strings.Cut(name, " "); first == q {
			return r, nil
		}
	}
	return Rule{}, fmt.Errorf("%w %q", ErrUnknownRule, query)
}

// Exists checks if a rule with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := registered[name]
	return ok
}

// List returns all registered rules in registration order.
func List() []Rule {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Rule, 0, len(order))
	for _, name := range order {
		result = append(result, registered[name])
	}
	return result
}

// Default returns the first registered rule (Classic unless the registry was
// changed by tests).
func Default() Rule {
	mu.RLock()
	defer mu.RUnlock()

	if len(order) == 0 {
		return Classic
	}
	return registered[order[0]]
}

// Prev returns the rule registered before the named one, wrapping around.
// Unknown names yield the default rule.
func Prev(name string) Rule {
	all := List()
	for i, r := range all {
		if r.Name == name {
			return all[(i+len(all)-1)%len(all)]
		}
	}
	return Default()
}

// Next returns the rule registered after the named one, wrapping around.
// Unknown names yield the default rule.
func Next(name string) Rule {
	all := List()
	for i, r := range all {
		if r.Name == name {
			return all[(i+1)%len(all)]
		}
	}
	return Default()
}
