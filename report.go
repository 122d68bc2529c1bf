package gqlcheck

import (
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/gqlcheck/ast"
)

// Diagnostic is a single validation error lifted off the document, with
// the node it was attached to.
type Diagnostic struct {
	// Subject is the name of the fragment or operation the error was
	// attached to. Empty for anonymous operations.
	Subject string `msgpack:"subject"`

	// Kind is "fragment" or "operation".
	Kind string `msgpack:"kind"`

	// Message is the error text.
	Message string `msgpack:"message"`

	// Rule names the validation rule that produced the error.
	Rule string `msgpack:"rule"`

	// Locations are the source positions the error refers to.
	Locations []ast.Location `msgpack:"locations"`
}

// Report is the flattened outcome of checking one document. Reports are
// what the cache stores and what callers consume; the annotated document
// itself stays with the checker.
type Report struct {
	// ID uniquely identifies this check run.
	ID string `msgpack:"id"`

	// Document is the source name the report was produced for.
	Document string `msgpack:"document"`

	Status      Status       `msgpack:"status"`
	Diagnostics []Diagnostic `msgpack:"diagnostics"`
}

// NewReport collects the diagnostics attached to a checked document into
// a report. Fragment errors come first in document order, then operation
// errors, each node's errors in attachment order.
func NewReport(document string, status Status, doc *ast.Document) *Report {
	report := &Report{
		ID:       uuid.NewString(),
		Document: document,
		Status:   status,
	}
	for _, frag := range doc.Fragments {
		for _, e := range frag.Errors {
			report.Diagnostics = append(report.Diagnostics, Diagnostic{
				Subject:   frag.Name,
				Kind:      "fragment",
				Message:   e.Message,
				Rule:      e.Rule,
				Locations: e.Locations,
			})
		}
	}
	for _, op := range doc.Operations {
		for _, e := range op.Errors {
			report.Diagnostics = append(report.Diagnostics, Diagnostic{
				Subject:   op.Name,
				Kind:      "operation",
				Message:   e.Message,
				Rule:      e.Rule,
				Locations: e.Locations,
			})
		}
	}
	return report
}

// Encode serializes the report for cache storage.
func (r *Report) Encode() ([]byte, error) {
	return msgpack.Marshal(r)
}

// DecodeReport deserializes a report produced by Encode.
func DecodeReport(data []byte) (*Report, error) {
	var r Report
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
