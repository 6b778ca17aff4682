package rdf

// Datatype IRIs fixed by RDF 1.1 Concepts.
var (
	// XSDString is the implicit datatype of simple literals.
	XSDString = NamedNode{iri: "http://www.w3.org/2001/XMLSchema#string"}
	// RDFLangString is the implicit datatype of language-tagged strings.
	RDFLangString = NamedNode{iri: "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"}
)

// Well-known IRIs used by the syntax layer.
var (
	RDFType  = NamedNode{iri: "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"}
	RDFFirst = NamedNode{iri: "http://www.w3.org/1999/02/22-rdf-syntax-ns#first"}
	RDFRest  = NamedNode{iri: "http://www.w3.org/1999/02/22-rdf-syntax-ns#rest"}
	RDFNil   = NamedNode{iri: "http://www.w3.org/1999/02/22-rdf-syntax-ns#nil"}

	XSDBoolean = NamedNode{iri: "http://www.w3.org/2001/XMLSchema#boolean"}
	XSDInteger = NamedNode{iri: "http://www.w3.org/2001/XMLSchema#integer"}
	XSDDecimal = NamedNode{iri: "http://www.w3.org/2001/XMLSchema#decimal"}
	XSDDouble  = NamedNode{iri: "http://www.w3.org/2001/XMLSchema#double"}
)
