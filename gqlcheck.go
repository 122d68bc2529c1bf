// Package gqlcheck validates parsed GraphQL query documents before
// execution. Validation rules inspect a document, attach diagnostics to
// the fragments and operations that caused them, and report an aggregate
// pass/fail status; the Checker runs a configured pipeline of rules and
// stops at the first failing one.
package gqlcheck

import (
	"context"
	"time"

	"github.com/syssam/gqlcheck/ast"
	"github.com/syssam/gqlcheck/parser"
)

// Status is the aggregate outcome of a rule or of a whole check run.
type Status int

const (
	// StatusOK means no errors were attached.
	StatusOK Status = iota

	// StatusError means at least one error was attached to the document.
	StatusError
)

// String returns the status name.
func (s Status) String() string {
	if s == StatusOK {
		return "ok"
	}
	return "error"
}

// Rule is a single validation check over a document.
//
// Check returns the rule's status and the (possibly annotated) document.
// Rules attach diagnostics to the document's fragments and operations;
// they never return a Go error, and they must not depend on state kept
// between invocations.
type Rule interface {
	// Name identifies the rule. It is recorded on every error the rule
	// produces.
	Name() string

	Check(doc *ast.Document) (Status, *ast.Document)
}

// CheckFunc is an adapter which allows the use of ordinary functions as
// validation rules.
type CheckFunc func(doc *ast.Document) (Status, *ast.Document)

// NewRule returns a Rule with the given name that runs f.
func NewRule(name string, f CheckFunc) Rule {
	return ruleFunc{name: name, f: f}
}

type ruleFunc struct {
	name string
	f    CheckFunc
}

func (r ruleFunc) Name() string { return r.name }

func (r ruleFunc) Check(doc *ast.Document) (Status, *ast.Document) { return r.f(doc) }

// Checker runs a pipeline of validation rules over documents.
//
// Rules run in order and the pipeline halts at the first rule that
// reports StatusError: diagnostics from earlier rules are already on the
// document, and later rules are not given a document known to be invalid.
type Checker struct {
	rules    []Rule
	cache    Cache
	cacheTTL time.Duration
}

// New returns a Checker running the given rules in order.
func New(rules ...Rule) *Checker {
	return &Checker{rules: rules}
}

// WithCache configures a report cache consulted by CheckSource. A zero
// ttl means cached reports do not expire.
func (c *Checker) WithCache(cache Cache, ttl time.Duration) *Checker {
	c.cache = cache
	c.cacheTTL = ttl
	return c
}

// Rules returns the names of the configured rules, in pipeline order.
func (c *Checker) Rules() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name()
	}
	return names
}

// Check runs the rule pipeline over an already parsed document. It
// returns the final status and the annotated document.
func (c *Checker) Check(doc *ast.Document) (Status, *ast.Document) {
	for _, rule := range c.rules {
		var status Status
		status, doc = rule.Check(doc)
		if status == StatusError {
			return StatusError, doc
		}
	}
	return StatusOK, doc
}

// CheckSource parses and checks a document source. The name is used in
// diagnostics, typically the source file path.
//
// When a cache is configured, the report is keyed by the source content
// and the rule pipeline; cache failures are ignored and the document is
// checked from scratch.
func (c *Checker) CheckSource(ctx context.Context, name, input string) (*Report, error) {
	key := NewCacheKey(input, c.Rules()).String()
	if c.cache != nil {
		if data, err := c.cache.Get(ctx, key); err == nil && data != nil {
			if report, err := DecodeReport(data); err == nil {
				return report, nil
			}
		}
	}

	doc, err := parser.Parse(name, input)
	if err != nil {
		return nil, NewParseError(name, err)
	}
	status, doc := c.Check(doc)
	report := NewReport(name, status, doc)

	if c.cache != nil {
		if data, err := report.Encode(); err == nil {
			_ = c.cache.Set(ctx, key, data, c.cacheTTL)
		}
	}
	return report, nil
}
