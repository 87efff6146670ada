// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

// Package knowledge serves the read-only course catalog built from the RDF
// knowledge graph (N-Triples using schema.org, the courses vocabulary and
// EduCOR).
//
// The graph is loaded once at startup and never mutated afterwards, so every
// Catalog method is safe for concurrent use without locking. A nil or empty
// graph is a valid catalog that returns no courses.
package knowledge

// TermKind distinguishes IRIs, blank nodes and literals.
type TermKind uint8

const (
	KindIRI TermKind = iota + 1
	KindBlank
	KindLiteral
)

// Term is an RDF term. Terms are comparable and used as map keys.
type Term struct {
	Kind     TermKind
	Value    string // IRI, blank node label or lexical form
	Datatype string // literals only
	Lang     string // literals only
}

// IRI returns an IRI term.
func IRI(v string) Term { return Term{Kind: KindIRI, Value: v} }

// Blank returns a blank node term.
func Blank(id string) Term { return Term{Kind: KindBlank, Value: id} }

// Literal returns a plain literal term.
func Literal(v string) Term { return Term{Kind: KindLiteral, Value: v} }

// TypedLiteral returns a literal with a datatype IRI.
func TypedLiteral(v, datatype string) Term {
	return Term{Kind: KindLiteral, Value: v, Datatype: datatype}
}

// IsIRI reports whether t is an IRI.
func (t Term) IsIRI() bool { return t.Kind == KindIRI }

// IsLiteral reports whether t is a literal.
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// String returns the term value without N-Triples syntax.
func (t Term) String() string { return t.Value }

// Triple is a single RDF statement.
type Triple struct {
	S, P, O Term
}

// Graph is an in-memory triple set indexed by subject/predicate and
// predicate/object. Iteration follows insertion order.
type Graph struct {
	seen map[Triple]struct{}
	spo  map[Term]map[Term][]Term
	pos  map[Term]map[Term][]Term
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		seen: make(map[Triple]struct{}),
		spo:  make(map[Term]map[Term][]Term),
		pos:  make(map[Term]map[Term][]Term),
	}
}

// Add inserts a triple and reports whether it was new.
func (g *Graph) Add(t Triple) bool {
	if _, ok := g.seen[t]; ok {
		return false
	}
	g.seen[t] = struct{}{}
	index(g.spo, t.S, t.P, t.O)
	index(g.pos, t.P, t.O, t.S)
	return true
}

func index(idx map[Term]map[Term][]Term, a, b, c Term) {
	inner, ok := idx[a]
	if !ok {
		inner = make(map[Term][]Term)
		idx[a] = inner
	}
	inner[b] = append(inner[b], c)
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.seen)
}

// Objects returns the objects of (s, p, ?).
func (g *Graph) Objects(s, p Term) []Term {
	if g == nil {
		return nil
	}
	return g.spo[s][p]
}

// Subjects returns the subjects of (?, p, o).
func (g *Graph) Subjects(p, o Term) []Term {
	if g == nil {
		return nil
	}
	return g.pos[p][o]
}

// Has reports whether (s, p, o) is in the graph.
func (g *Graph) Has(s, p, o Term) bool {
	if g == nil {
		return false
	}
	_, ok := g.seen[Triple{S: s, P: p, O: o}]
	return ok
}
