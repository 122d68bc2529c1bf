package rules

import (
	"fmt"

	"github.com/syssam/gqlcheck"
	"github.com/syssam/gqlcheck/ast"
)

// RuleUniqueFragmentNames is the name of the duplicate fragment name rule.
const RuleUniqueFragmentNames = "UniqueFragmentNames"

// UniqueFragmentNames returns the rule requiring every named fragment in
// a document to have a distinct name. Each redefinition after the first
// gets an error at its own position.
func UniqueFragmentNames() gqlcheck.Rule {
	return gqlcheck.NewRule(RuleUniqueFragmentNames, func(doc *ast.Document) (gqlcheck.Status, *ast.Document) {
		status := gqlcheck.StatusOK
		seen := make(map[string]bool, len(doc.Fragments))
		for _, frag := range doc.Fragments {
			if seen[frag.Name] {
				frag.Errors = append(frag.Errors, &ast.Error{
					Message: fmt.Sprintf("There can be only one fragment named %q.", frag.Name),
					Rule:    RuleUniqueFragmentNames,
					Locations: []ast.Location{
						{Line: frag.Position.Line, Column: frag.Position.Column},
					},
				})
				status = gqlcheck.StatusError
			}
			seen[frag.Name] = true
		}
		return status, doc
	})
}
