package rules

import (
	"fmt"
	"strings"

	"github.com/syssam/gqlcheck"
	"github.com/syssam/gqlcheck/ast"
	"github.com/syssam/gqlcheck/internal/digraph"
)

// RuleFragmentCycles is the name of the fragment cycle rule.
const RuleFragmentCycles = "FragmentCycles"

// FragmentCycles returns the rule detecting cyclic references among named
// fragments: a fragment spreading itself, directly or through any chain
// of intermediate fragments, would expand forever at execution time.
//
// Each fragment on a cycle gets exactly one error describing the cycle
// path as seen from that fragment, located at the fragment's own
// definition. Spreads of undefined fragments are not this rule's concern
// and produce nothing.
func FragmentCycles() gqlcheck.Rule {
	return fragmentCycles{}
}

type fragmentCycles struct{}

func (fragmentCycles) Name() string { return RuleFragmentCycles }

func (r fragmentCycles) Check(doc *ast.Document) (gqlcheck.Status, *ast.Document) {
	// The dependency graph lives for this call only. Vertices are
	// fragment names; an edge records that the fragment spreads the
	// target anywhere inside its selection subtree.
	g := digraph.New()
	for _, frag := range doc.Fragments {
		g.AddVertex(frag.Name)
		addSpreadEdges(g, frag.Name, frag.Selections)
	}

	found := 0
	fragments := make([]*ast.Fragment, 0, len(doc.Fragments))
	for _, frag := range doc.Fragments {
		if cycle := g.CycleFrom(frag.Name); len(cycle) > 0 {
			frag.Errors = append([]*ast.Error{cycleError(frag, cycle)}, frag.Errors...)
			found++
		}
		fragments = append(fragments, frag)
	}
	doc.Fragments = fragments

	if found > 0 {
		return gqlcheck.StatusError, doc
	}
	return gqlcheck.StatusOK, doc
}

// addSpreadEdges walks a selection subtree and records every spread as an
// edge from the enclosing named fragment, regardless of how deeply the
// spread is nested inside fields or inline fragments.
func addSpreadEdges(g *digraph.Graph, owner string, selections []ast.Selection) {
	for _, sel := range selections {
		switch s := sel.(type) {
		case *ast.FragmentSpread:
			g.AddEdge(owner, s.Name)
		case *ast.Field:
			addSpreadEdges(g, owner, s.Selections)
		case *ast.InlineFragment:
			addSpreadEdges(g, owner, s.Selections)
		}
	}
}

func cycleError(frag *ast.Fragment, cycle []string) *ast.Error {
	return &ast.Error{
		Message: cycleMessage(cycle),
		Rule:    RuleFragmentCycles,
		Locations: []ast.Location{
			{Line: frag.Position.Line, Column: frag.Position.Column},
		},
	}
}

func cycleMessage(cycle []string) string {
	if len(cycle) == 1 {
		return "forms a cycle with itself"
	}
	quoted := make([]string, len(cycle))
	for i, name := range cycle {
		quoted[i] = "'" + name + "'"
	}
	return fmt.Sprintf("forms a cycle via: (%s)", strings.Join(quoted, " => "))
}
