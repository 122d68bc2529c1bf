package rules

import (
	"fmt"

	"github.com/syssam/gqlcheck"
	"github.com/syssam/gqlcheck/ast"
)

// RuleKnownFragmentNames is the name of the unknown fragment target rule.
const RuleKnownFragmentNames = "KnownFragmentNames"

// KnownFragmentNames returns the rule requiring every fragment spread to
// reference a fragment defined in the same document. Errors attach to the
// operation or fragment containing the spread, at the spread's position.
func KnownFragmentNames() gqlcheck.Rule {
	return gqlcheck.NewRule(RuleKnownFragmentNames, func(doc *ast.Document) (gqlcheck.Status, *ast.Document) {
		defined := make(map[string]bool, len(doc.Fragments))
		for _, frag := range doc.Fragments {
			defined[frag.Name] = true
		}

		status := gqlcheck.StatusOK
		report := func(errs *[]*ast.Error, spread *ast.FragmentSpread) {
			*errs = append(*errs, &ast.Error{
				Message: fmt.Sprintf("Unknown fragment %q.", spread.Name),
				Rule:    RuleKnownFragmentNames,
				Locations: []ast.Location{
					{Line: spread.Position.Line, Column: spread.Position.Column},
				},
			})
			status = gqlcheck.StatusError
		}
		for _, op := range doc.Operations {
			for _, spread := range spreads(op.Selections) {
				if !defined[spread.Name] {
					report(&op.Errors, spread)
				}
			}
		}
		for _, frag := range doc.Fragments {
			for _, spread := range spreads(frag.Selections) {
				if !defined[spread.Name] {
					report(&frag.Errors, spread)
				}
			}
		}
		return status, doc
	})
}

// spreads collects every fragment spread in a selection subtree, in
// document order.
func spreads(selections []ast.Selection) []*ast.FragmentSpread {
	var out []*ast.FragmentSpread
	for _, sel := range selections {
		switch s := sel.(type) {
		case *ast.FragmentSpread:
			out = append(out, s)
		case *ast.Field:
			out = append(out, spreads(s.Selections)...)
		case *ast.InlineFragment:
			out = append(out, spreads(s.Selections)...)
		}
	}
	return out
}
