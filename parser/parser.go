// Package parser turns GraphQL source text into the ast types the
// validation rules operate on. It is the only package that touches the
// underlying gqlparser library; rules never see its types.
package parser

import (
	gqlast "github.com/vektah/gqlparser/v2/ast"
	gqlparser "github.com/vektah/gqlparser/v2/parser"

	"github.com/syssam/gqlcheck/ast"
)

// Parse parses a GraphQL query document. The name is used in parse error
// messages only, typically the source file name.
func Parse(name, input string) (*ast.Document, error) {
	qdoc, err := gqlparser.ParseQuery(&gqlast.Source{Name: name, Input: input})
	if err != nil {
		return nil, err
	}
	return convertDocument(qdoc), nil
}

func convertDocument(qdoc *gqlast.QueryDocument) *ast.Document {
	doc := &ast.Document{}
	for _, op := range qdoc.Operations {
		doc.Operations = append(doc.Operations, &ast.Operation{
			Name:       op.Name,
			Type:       string(op.Operation),
			Position:   convertPosition(op.Position),
			Selections: convertSelections(op.SelectionSet),
		})
	}
	for _, frag := range qdoc.Fragments {
		doc.Fragments = append(doc.Fragments, &ast.Fragment{
			Name:          frag.Name,
			TypeCondition: frag.TypeCondition,
			Position:      convertPosition(frag.Position),
			Selections:    convertSelections(frag.SelectionSet),
		})
	}
	return doc
}

func convertSelections(set gqlast.SelectionSet) []ast.Selection {
	if len(set) == 0 {
		return nil
	}
	selections := make([]ast.Selection, 0, len(set))
	for _, sel := range set {
		switch s := sel.(type) {
		case *gqlast.Field:
			selections = append(selections, &ast.Field{
				Alias:      s.Alias,
				Name:       s.Name,
				Position:   convertPosition(s.Position),
				Selections: convertSelections(s.SelectionSet),
			})
		case *gqlast.FragmentSpread:
			selections = append(selections, &ast.FragmentSpread{
				Name:     s.Name,
				Position: convertPosition(s.Position),
			})
		case *gqlast.InlineFragment:
			selections = append(selections, &ast.InlineFragment{
				TypeCondition: s.TypeCondition,
				Position:      convertPosition(s.Position),
				Selections:    convertSelections(s.SelectionSet),
			})
		}
	}
	return selections
}

func convertPosition(pos *gqlast.Position) ast.Position {
	if pos == nil {
		return ast.Position{}
	}
	return ast.Position{Line: pos.Line, Column: pos.Column}
}
