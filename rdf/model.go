package rdf

// TermKind identifies RDF term types.
type TermKind uint8

const (
	// TermNamedNode represents an IRI term.
	TermNamedNode TermKind = iota
	// TermBlankNode represents a blank node term.
	TermBlankNode
	// TermLiteral represents a literal term.
	TermLiteral
)

// Term is the closed union of all RDF terms: NamedNode, BlankNode and
// Literal. Nothing outside this package can add a member, so a switch on
// Kind (or a type switch over the three concrete types) is exhaustive.
type Term interface {
	// Kind identifies the concrete term type.
	Kind() TermKind
	// Value returns the term's own string: the IRI, the blank node
	// identifier, or the literal lexical form.
	Value() string
	// String returns the canonical N-Triples style rendering.
	String() string

	isTerm()
}

// NamedOrBlankNode is the closed union of terms usable in the subject or
// graph name position: NamedNode and BlankNode. Literals are excluded.
//
// Converting a NamedNode or BlankNode into a NamedOrBlankNode (or a Term)
// is plain interface satisfaction and never fails. Going the other way,
// from Term back to NamedOrBlankNode, is a type assertion and may fail,
// since Term is a strict superset.
type NamedOrBlankNode interface {
	Term

	isNamedOrBlankNode()
}

// NamedNode represents an RDF IRI.
//
// The IRI string is kept verbatim; this layer performs no syntactic
// validation (that is the producing parser's responsibility).
type NamedNode struct {
	iri string
}

// Kind returns TermNamedNode.
func (n NamedNode) Kind() TermKind { return TermNamedNode }

// Value returns the IRI string verbatim.
func (n NamedNode) Value() string { return n.iri }

// String returns the IRI wrapped in angle brackets.
func (n NamedNode) String() string { return "<" + n.iri + ">" }

func (n NamedNode) isTerm()             {}
func (n NamedNode) isNamedOrBlankNode() {}

// BlankNode represents an RDF blank node. Its identity is the identifier
// string; uniqueness is the caller's (or the factory's) responsibility.
type BlankNode struct {
	id string
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// Value returns the blank node identifier verbatim.
func (b BlankNode) Value() string { return b.id }

// String returns the identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.id }

func (b BlankNode) isTerm()             {}
func (b BlankNode) isNamedOrBlankNode() {}

type literalKind uint8

const (
	simpleLiteral literalKind = iota
	languageTaggedString
	typedLiteral
)

// Literal represents an RDF literal. Exactly one of the three variants is
// active: a simple literal (implicit datatype xsd:string), a
// language-tagged string (implicit datatype rdf:langString), or a typed
// literal carrying an explicit datatype IRI.
type Literal struct {
	kind     literalKind
	value    string
	language string
	datatype NamedNode
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// Value returns the lexical form.
func (l Literal) Value() string { return l.value }

// Language returns the language tag and true for language-tagged strings,
// or "" and false for the other variants.
func (l Literal) Language() (string, bool) {
	if l.kind != languageTaggedString {
		return "", false
	}
	return l.language, true
}

// Datatype returns the literal's datatype IRI: xsd:string for simple
// literals, rdf:langString for language-tagged strings, or the stored
// datatype for typed literals.
func (l Literal) Datatype() NamedNode {
	switch l.kind {
	case simpleLiteral:
		return XSDString
	case languageTaggedString:
		return RDFLangString
	default:
		return l.datatype
	}
}

// IsPlain reports whether the literal is simple or language-tagged.
func (l Literal) IsPlain() bool { return l.kind != typedLiteral }

// String returns the canonical rendering: "value", "value"@lang, or
// "value"^^<datatype>, with the lexical form escaped so the output
// re-parses.
func (l Literal) String() string {
	switch l.kind {
	case languageTaggedString:
		return quoteLiteral(l.value) + "@" + l.language
	case typedLiteral:
		return quoteLiteral(l.value) + "^^" + l.datatype.String()
	default:
		return quoteLiteral(l.value)
	}
}

func (l Literal) isTerm() {}
