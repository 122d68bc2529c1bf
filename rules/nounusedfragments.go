package rules

import (
	"fmt"

	"github.com/syssam/gqlcheck"
	"github.com/syssam/gqlcheck/ast"
)

// RuleNoUnusedFragments is the name of the unused fragment rule.
const RuleNoUnusedFragments = "NoUnusedFragments"

// NoUnusedFragments returns the rule requiring every named fragment to be
// reachable from some operation, directly or through other fragments it
// is spread from.
func NoUnusedFragments() gqlcheck.Rule {
	return gqlcheck.NewRule(RuleNoUnusedFragments, func(doc *ast.Document) (gqlcheck.Status, *ast.Document) {
		used := make(map[string]bool)
		var mark func(selections []ast.Selection)
		mark = func(selections []ast.Selection) {
			for _, spread := range spreads(selections) {
				if used[spread.Name] {
					continue
				}
				used[spread.Name] = true
				if frag := doc.Fragment(spread.Name); frag != nil {
					mark(frag.Selections)
				}
			}
		}
		for _, op := range doc.Operations {
			mark(op.Selections)
		}

		status := gqlcheck.StatusOK
		for _, frag := range doc.Fragments {
			if used[frag.Name] {
				continue
			}
			frag.Errors = append(frag.Errors, &ast.Error{
				Message: fmt.Sprintf("Fragment %q is never used.", frag.Name),
				Rule:    RuleNoUnusedFragments,
				Locations: []ast.Location{
					{Line: frag.Position.Line, Column: frag.Position.Column},
				},
			})
			status = gqlcheck.StatusError
		}
		return status, doc
	})
}
