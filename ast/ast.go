// Package ast defines the document representation consumed by the
// validation rules: operations, named fragments, and the selection
// variants that may appear inside them.
package ast

// Position points at the place in the source text a node was parsed from.
type Position struct {
	Line   int
	Column int
}

// Location is a line/column pair recorded on a validation error.
type Location struct {
	Line   int `msgpack:"line"`
	Column int `msgpack:"column"`
}

// Error is a diagnostic produced by a validation rule. Errors are
// append-only: once attached to a node they are never removed or
// rewritten by later rules.
type Error struct {
	// Message is the human-readable description of the problem.
	Message string `msgpack:"message"`

	// Rule names the validation rule that produced this error, so
	// consumers can filter or group diagnostics by originating check.
	Rule string `msgpack:"rule"`

	// Locations are the source positions the error refers to.
	Locations []Location `msgpack:"locations"`
}

// Document is a parsed query document: the executable operations and the
// named fragments they may spread.
type Document struct {
	Operations []*Operation
	Fragments  []*Fragment
}

// Fragment returns the fragment with the given name, or nil if the
// document does not define one.
func (d *Document) Fragment(name string) *Fragment {
	for _, f := range d.Fragments {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Operation is a single query, mutation, or subscription definition.
type Operation struct {
	// Name is empty for anonymous (shorthand) operations.
	Name string

	// Type is the operation keyword: "query", "mutation" or "subscription".
	Type string

	Position   Position
	Selections []Selection

	// Errors accumulates diagnostics attached by validation rules.
	Errors []*Error
}

// Fragment is a named, reusable selection set.
type Fragment struct {
	// Name uniquely identifies the fragment within a valid document.
	Name string

	// TypeCondition is the type the fragment applies to.
	TypeCondition string

	Position   Position
	Selections []Selection

	// Errors accumulates diagnostics attached by validation rules, in
	// the order the rules ran.
	Errors []*Error
}

// Selection is one entry of a selection set. The concrete variants are
// Field, FragmentSpread and InlineFragment.
type Selection interface {
	isSelection()
	GetPosition() Position
}

func (*Field) isSelection()          {}
func (*FragmentSpread) isSelection() {}
func (*InlineFragment) isSelection() {}

// GetPosition returns the source position of the selection.
func (s *Field) GetPosition() Position          { return s.Position }
func (s *FragmentSpread) GetPosition() Position { return s.Position }
func (s *InlineFragment) GetPosition() Position { return s.Position }

// Field is a field selection, possibly with its own nested selection set.
type Field struct {
	Alias      string
	Name       string
	Position   Position
	Selections []Selection
}

// FragmentSpread references a named fragment to be inlined at execution
// time.
type FragmentSpread struct {
	// Name is the target fragment's name. The parser does not verify
	// that a fragment of that name is defined.
	Name     string
	Position Position
}

// InlineFragment is an unnamed fragment applied directly inside a
// selection set, usually to condition on a type.
type InlineFragment struct {
	TypeCondition string
	Position      Position
	Selections    []Selection
}
