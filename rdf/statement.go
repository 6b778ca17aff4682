package rdf

import "fmt"

// TripleLike exposes uniform access to the parts of an RDF statement.
// Both Triple and Quad satisfy it, so triple-only consumers (such as
// serializers for triple formats) can handle either. Accessors return
// value copies the caller owns.
type TripleLike interface {
	// Subject returns the statement subject.
	Subject() NamedOrBlankNode
	// Predicate returns the statement predicate.
	Predicate() NamedNode
	// Object returns the statement object.
	Object() Term
}

// QuadLike extends TripleLike with the graph name position. A nil graph
// name denotes the default graph.
type QuadLike interface {
	TripleLike

	// GraphName returns the graph name, or nil for the default graph.
	GraphName() NamedOrBlankNode
}

// Triple is one RDF statement. The predicate is always a NamedNode;
// literals and blank nodes are not admitted in that position.
type Triple struct {
	subject   NamedOrBlankNode
	predicate NamedNode
	object    Term
}

// Subject returns the triple subject.
func (t Triple) Subject() NamedOrBlankNode { return t.subject }

// Predicate returns the triple predicate.
func (t Triple) Predicate() NamedNode { return t.predicate }

// Object returns the triple object.
func (t Triple) Object() Term { return t.object }

// String returns "subject predicate object ." using each term's own
// rendering.
func (t Triple) String() string {
	return fmt.Sprintf("%v %v %v .", t.subject, t.predicate, t.object)
}

// ToQuad places the triple in the default graph.
func (t Triple) ToQuad() Quad {
	return Quad{subject: t.subject, predicate: t.predicate, object: t.object}
}

// InGraph places the triple in the named graph, or in the default graph
// when graphName is nil.
func (t Triple) InGraph(graphName NamedOrBlankNode) Quad {
	return Quad{subject: t.subject, predicate: t.predicate, object: t.object, graph: graphName}
}

// Quad is a triple situated in an RDF dataset: the triple fields plus an
// optional graph name. A nil graph name denotes the default graph.
type Quad struct {
	subject   NamedOrBlankNode
	predicate NamedNode
	object    Term
	graph     NamedOrBlankNode
}

// Subject returns the quad subject.
func (q Quad) Subject() NamedOrBlankNode { return q.subject }

// Predicate returns the quad predicate.
func (q Quad) Predicate() NamedNode { return q.predicate }

// Object returns the quad object.
func (q Quad) Object() Term { return q.object }

// GraphName returns the graph name, or nil for the default graph.
func (q Quad) GraphName() NamedOrBlankNode { return q.graph }

// InDefaultGraph reports whether the quad is in the default graph.
func (q Quad) InDefaultGraph() bool { return q.graph == nil }

// ToTriple extracts the triple, discarding the graph name.
func (q Quad) ToTriple() Triple {
	return Triple{subject: q.subject, predicate: q.predicate, object: q.object}
}

// String returns "subject predicate object graph ." when a graph name is
// present, or the triple form when the quad is in the default graph.
func (q Quad) String() string {
	if q.graph == nil {
		return fmt.Sprintf("%v %v %v .", q.subject, q.predicate, q.object)
	}
	return fmt.Sprintf("%v %v %v %v .", q.subject, q.predicate, q.object, q.graph)
}
