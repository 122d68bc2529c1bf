// Package rules provides the document validation rules and the default
// pipeline ordering.
//
// Rules are pure document-shape checks: they need no schema and no
// execution state. Each rule attaches its diagnostics to the fragment or
// operation that caused them and reports whether it found anything; the
// gqlcheck.Checker decides what to do with a failing rule.
package rules

import (
	"fmt"

	"github.com/syssam/gqlcheck"
)

// constructors maps rule names to their constructors for configuration
// lookup.
var constructors = map[string]func() gqlcheck.Rule{
	RuleUniqueFragmentNames: UniqueFragmentNames,
	RuleKnownFragmentNames:  KnownFragmentNames,
	RuleFragmentCycles:      FragmentCycles,
	RuleNoUnusedFragments:   NoUnusedFragments,
}

// Default returns the default rule pipeline in execution order. Cheap
// name checks run before cycle detection; the unused-fragment check runs
// last since it only matters for otherwise well-formed documents.
func Default() []gqlcheck.Rule {
	return []gqlcheck.Rule{
		UniqueFragmentNames(),
		KnownFragmentNames(),
		FragmentCycles(),
		NoUnusedFragments(),
	}
}

// ByName resolves rule names, typically from configuration, preserving
// the given order. Unknown names yield an error wrapping
// gqlcheck.ErrUnknownRule.
func ByName(names ...string) ([]gqlcheck.Rule, error) {
	out := make([]gqlcheck.Rule, 0, len(names))
	for _, name := range names {
		ctor, ok := constructors[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", gqlcheck.ErrUnknownRule, name)
		}
		out = append(out, ctor())
	}
	return out, nil
}
