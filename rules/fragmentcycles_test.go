package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gqlcheck"
	"github.com/syssam/gqlcheck/ast"
	"github.com/syssam/gqlcheck/rules"
)

// frag builds a fragment whose position encodes its index in the
// document, so location assertions can tell fragments apart.
func frag(name string, line int, selections ...ast.Selection) *ast.Fragment {
	return &ast.Fragment{
		Name:       name,
		Position:   ast.Position{Line: line, Column: 1},
		Selections: selections,
	}
}

func spreadOf(name string) *ast.FragmentSpread {
	return &ast.FragmentSpread{Name: name}
}

func TestFragmentCyclesNoSpreads(t *testing.T) {
	t.Parallel()

	doc := &ast.Document{Fragments: []*ast.Fragment{
		frag("a", 1, &ast.Field{Name: "id"}),
		frag("b", 2, &ast.Field{Name: "name"}),
	}}

	status, out := rules.FragmentCycles().Check(doc)
	assert.Equal(t, gqlcheck.StatusOK, status)
	require.Len(t, out.Fragments, 2)
	for _, f := range out.Fragments {
		assert.Empty(t, f.Errors)
	}
}

func TestFragmentCyclesSelfReference(t *testing.T) {
	t.Parallel()

	doc := &ast.Document{Fragments: []*ast.Fragment{
		frag("a", 3, spreadOf("a")),
	}}

	status, out := rules.FragmentCycles().Check(doc)
	assert.Equal(t, gqlcheck.StatusError, status)
	require.Len(t, out.Fragments[0].Errors, 1)

	e := out.Fragments[0].Errors[0]
	assert.Equal(t, "forms a cycle with itself", e.Message)
	assert.Equal(t, rules.RuleFragmentCycles, e.Rule)
	assert.Equal(t, []ast.Location{{Line: 3, Column: 1}}, e.Locations)
}

func TestFragmentCyclesChain(t *testing.T) {
	t.Parallel()

	doc := &ast.Document{Fragments: []*ast.Fragment{
		frag("a", 1, spreadOf("b")),
		frag("b", 2, spreadOf("c")),
		frag("c", 3, spreadOf("a")),
	}}

	status, out := rules.FragmentCycles().Check(doc)
	assert.Equal(t, gqlcheck.StatusError, status)

	// Every member reports the cycle as seen from its own vertex, at its
	// own definition.
	want := []string{
		"forms a cycle via: ('a' => 'b' => 'c')",
		"forms a cycle via: ('b' => 'c' => 'a')",
		"forms a cycle via: ('c' => 'a' => 'b')",
	}
	for i, f := range out.Fragments {
		require.Len(t, f.Errors, 1, "fragment %s", f.Name)
		assert.Equal(t, want[i], f.Errors[0].Message)
		assert.Equal(t, []ast.Location{{Line: i + 1, Column: 1}}, f.Errors[0].Locations)
	}
}

func TestFragmentCyclesTwoFragments(t *testing.T) {
	t.Parallel()

	doc := &ast.Document{Fragments: []*ast.Fragment{
		frag("X", 1, spreadOf("Y")),
		frag("Y", 2, spreadOf("X")),
	}}

	status, out := rules.FragmentCycles().Check(doc)
	assert.Equal(t, gqlcheck.StatusError, status)
	require.Len(t, out.Fragments[0].Errors, 1)
	require.Len(t, out.Fragments[1].Errors, 1)
	assert.Equal(t, "forms a cycle via: ('X' => 'Y')", out.Fragments[0].Errors[0].Message)
	assert.Equal(t, "forms a cycle via: ('Y' => 'X')", out.Fragments[1].Errors[0].Message)
}

func TestFragmentCyclesNestedSpread(t *testing.T) {
	t.Parallel()

	// The spread back to "a" is buried inside an inline fragment inside
	// a field subtree; the edge still belongs to the named fragment.
	doc := &ast.Document{Fragments: []*ast.Fragment{
		frag("a", 1, &ast.Field{
			Name: "user",
			Selections: []ast.Selection{
				&ast.InlineFragment{
					TypeCondition: "Admin",
					Selections:    []ast.Selection{spreadOf("b")},
				},
			},
		}),
		frag("b", 2, spreadOf("a")),
	}}

	status, out := rules.FragmentCycles().Check(doc)
	assert.Equal(t, gqlcheck.StatusError, status)
	require.Len(t, out.Fragments[0].Errors, 1)
	assert.Equal(t, "forms a cycle via: ('a' => 'b')", out.Fragments[0].Errors[0].Message)
}

func TestFragmentCyclesDanglingSpread(t *testing.T) {
	t.Parallel()

	// Spreading an undefined fragment is another rule's problem, not a
	// cycle.
	doc := &ast.Document{Fragments: []*ast.Fragment{
		frag("a", 1, spreadOf("missing")),
	}}

	status, out := rules.FragmentCycles().Check(doc)
	assert.Equal(t, gqlcheck.StatusOK, status)
	assert.Empty(t, out.Fragments[0].Errors)
}

func TestFragmentCyclesUnrelatedFragmentsUntouched(t *testing.T) {
	t.Parallel()

	earlier := &ast.Error{Message: "from an earlier phase", Rule: "Other"}
	bystander := frag("clean", 3, &ast.Field{Name: "id"})
	bystander.Errors = []*ast.Error{earlier}

	doc := &ast.Document{Fragments: []*ast.Fragment{
		frag("a", 1, spreadOf("b")),
		frag("b", 2, spreadOf("a")),
		bystander,
	}}

	status, out := rules.FragmentCycles().Check(doc)
	assert.Equal(t, gqlcheck.StatusError, status)
	require.Len(t, out.Fragments, 3)
	assert.Equal(t, []*ast.Error{earlier}, out.Fragments[2].Errors)
}

func TestFragmentCyclesPrependsToExistingErrors(t *testing.T) {
	t.Parallel()

	earlier := &ast.Error{Message: "from an earlier phase", Rule: "Other"}
	f := frag("a", 1, spreadOf("a"))
	f.Errors = []*ast.Error{earlier}

	doc := &ast.Document{Fragments: []*ast.Fragment{f}}

	_, out := rules.FragmentCycles().Check(doc)
	require.Len(t, out.Fragments[0].Errors, 2)
	assert.Equal(t, rules.RuleFragmentCycles, out.Fragments[0].Errors[0].Rule)
	assert.Same(t, earlier, out.Fragments[0].Errors[1])
}

func TestFragmentCyclesPreservesOrderAndCount(t *testing.T) {
	t.Parallel()

	doc := &ast.Document{Fragments: []*ast.Fragment{
		frag("z", 1, spreadOf("z")),
		frag("m", 2),
		frag("a", 3, spreadOf("m")),
	}}

	_, out := rules.FragmentCycles().Check(doc)
	names := make([]string, len(out.Fragments))
	for i, f := range out.Fragments {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"z", "m", "a"}, names)
}

func TestFragmentCyclesShortestCycleReported(t *testing.T) {
	t.Parallel()

	// "a" closes two cycles: a => b => a and a => c => d => a. The
	// report must name the shorter one.
	doc := &ast.Document{Fragments: []*ast.Fragment{
		frag("a", 1, spreadOf("c"), spreadOf("b")),
		frag("b", 2, spreadOf("a")),
		frag("c", 3, spreadOf("d")),
		frag("d", 4, spreadOf("a")),
	}}

	_, out := rules.FragmentCycles().Check(doc)
	require.Len(t, out.Fragments[0].Errors, 1)
	assert.Equal(t, "forms a cycle via: ('a' => 'b')", out.Fragments[0].Errors[0].Message)
}

func TestFragmentCyclesDeterministic(t *testing.T) {
	t.Parallel()

	build := func() *ast.Document {
		return &ast.Document{Fragments: []*ast.Fragment{
			frag("a", 1, spreadOf("b"), spreadOf("c")),
			frag("b", 2, spreadOf("a")),
			frag("c", 3, spreadOf("a")),
		}}
	}

	_, first := rules.FragmentCycles().Check(build())
	for i := 0; i < 20; i++ {
		_, again := rules.FragmentCycles().Check(build())
		for j := range first.Fragments {
			require.Len(t, again.Fragments[j].Errors, len(first.Fragments[j].Errors))
			for k := range first.Fragments[j].Errors {
				assert.Equal(t, first.Fragments[j].Errors[k].Message, again.Fragments[j].Errors[k].Message)
			}
		}
	}
}
