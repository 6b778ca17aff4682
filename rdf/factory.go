package rdf

import (
	"strconv"
	"sync"
)

// blankNodeIDProvider hands out blank node suffixes that are unique for
// the lifetime of the shared instance. The counter is monotonic and
// starts at zero, so the first call to next returns 1.
type blankNodeIDProvider struct {
	mu      sync.Mutex
	counter uint64
}

func (p *blankNodeIDProvider) next() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counter++
	return p.counter
}

// DataFactory builds RDF terms and statements. It performs no validation:
// malformed IRIs or language tags pass through verbatim, and a typed
// literal may carry any NamedNode as datatype. Validation belongs to the
// producing parser.
//
// A DataFactory is a small handle; copies share the same blank node
// counter, so any number of goroutines may hold copies and call
// NewBlankNode concurrently without ever observing a duplicate
// identifier. Use NewDataFactory to obtain an isolated counter.
type DataFactory struct {
	blankNodeIDs *blankNodeIDProvider
}

// NewDataFactory returns a factory with its own blank node counter.
func NewDataFactory() DataFactory {
	return DataFactory{blankNodeIDs: &blankNodeIDProvider{}}
}

// NamedNode builds an IRI term from the verbatim IRI string.
func (f DataFactory) NamedNode(iri string) NamedNode {
	return NamedNode{iri: iri}
}

// BlankNode builds a blank node with a caller-supplied identifier, for
// round-tripping externally assigned labels (e.g. read from parsed
// input). Reusing the same identifier yields an equal node.
func (f DataFactory) BlankNode(id string) BlankNode {
	return BlankNode{id: id}
}

// NewBlankNode builds a blank node with the next unique identifier from
// the factory's shared counter, rendered in decimal.
func (f DataFactory) NewBlankNode() BlankNode {
	return BlankNode{id: strconv.FormatUint(f.blankNodeIDs.next(), 10)}
}

// SimpleLiteral builds a literal with the implicit datatype xsd:string.
func (f DataFactory) SimpleLiteral(value string) Literal {
	return Literal{kind: simpleLiteral, value: value}
}

// TypedLiteral builds a literal with an explicit datatype IRI.
func (f DataFactory) TypedLiteral(value string, datatype NamedNode) Literal {
	return Literal{kind: typedLiteral, value: value, datatype: datatype}
}

// LanguageTaggedLiteral builds a language-tagged string. The tag is kept
// verbatim; BCP47 conformance is not checked here.
func (f DataFactory) LanguageTaggedLiteral(value, language string) Literal {
	return Literal{kind: languageTaggedString, value: value, language: language}
}

// Triple builds an RDF statement.
func (f DataFactory) Triple(subject NamedOrBlankNode, predicate NamedNode, object Term) Triple {
	return Triple{subject: subject, predicate: predicate, object: object}
}

// Quad builds an RDF statement situated in a dataset. A nil graphName
// places the statement in the default graph.
func (f DataFactory) Quad(subject NamedOrBlankNode, predicate NamedNode, object Term, graphName NamedOrBlankNode) Quad {
	return Quad{subject: subject, predicate: predicate, object: object, graph: graphName}
}
