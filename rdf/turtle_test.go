package rdf

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func decodeTurtle(t *testing.T, input string, factory DataFactory) []Triple {
	t.Helper()
	dec, err := NewTripleDecoder(strings.NewReader(input), FormatTurtle, factory)
	if err != nil {
		t.Fatalf("NewTripleDecoder: %v", err)
	}
	defer dec.Close()

	var triples []Triple
	for {
		triple, err := dec.Next()
		if err == io.EOF {
			return triples
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		triples = append(triples, triple)
	}
}

func TestTurtlePrefixedNames(t *testing.T) {
	factory := NewDataFactory()
	input := `@prefix ex: <http://example.org/> .
PREFIX foaf: <http://xmlns.com/foaf/0.1/>
ex:alice a foaf:Person .
ex:alice foaf:name "Alice" .
`
	triples := decodeTurtle(t, input, factory)
	want := []Triple{
		factory.Triple(factory.NamedNode("http://example.org/alice"), RDFType, factory.NamedNode("http://xmlns.com/foaf/0.1/Person")),
		factory.Triple(factory.NamedNode("http://example.org/alice"), factory.NamedNode("http://xmlns.com/foaf/0.1/name"), factory.SimpleLiteral("Alice")),
	}
	if len(triples) != len(want) {
		t.Fatalf("expected %d triples, got %d", len(want), len(triples))
	}
	for i := range want {
		if triples[i] != want[i] {
			t.Fatalf("triple %d: got %v, want %v", i, triples[i], want[i])
		}
	}
}

func TestTurtlePredicateObjectLists(t *testing.T) {
	factory := NewDataFactory()
	input := `@prefix ex: <http://example.org/> .
ex:s ex:p ex:o1, ex:o2 ;
     ex:q "v"@en .
`
	triples := decodeTurtle(t, input, factory)
	want := []Triple{
		factory.Triple(factory.NamedNode("http://example.org/s"), factory.NamedNode("http://example.org/p"), factory.NamedNode("http://example.org/o1")),
		factory.Triple(factory.NamedNode("http://example.org/s"), factory.NamedNode("http://example.org/p"), factory.NamedNode("http://example.org/o2")),
		factory.Triple(factory.NamedNode("http://example.org/s"), factory.NamedNode("http://example.org/q"), factory.LanguageTaggedLiteral("v", "en")),
	}
	if len(triples) != len(want) {
		t.Fatalf("expected %d triples, got %d", len(want), len(triples))
	}
	for i := range want {
		if triples[i] != want[i] {
			t.Fatalf("triple %d: got %v, want %v", i, triples[i], want[i])
		}
	}
}

func TestTurtleBaseResolution(t *testing.T) {
	factory := NewDataFactory()
	input := `@base <http://example.org/dir/> .
<s> <p> <../o> .
`
	triples := decodeTurtle(t, input, factory)
	if len(triples) != 1 {
		t.Fatalf("expected 1 triple, got %d", len(triples))
	}
	got := triples[0]
	if got.Subject().Value() != "http://example.org/dir/s" {
		t.Fatalf("subject: %q", got.Subject().Value())
	}
	if got.Object().Value() != "http://example.org/o" {
		t.Fatalf("object: %q", got.Object().Value())
	}
}

func TestTurtleLiteralForms(t *testing.T) {
	factory := NewDataFactory()
	input := `@prefix ex: <http://example.org/> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
ex:s ex:p 42 .
ex:s ex:p 3.14 .
ex:s ex:p 1.0e6 .
ex:s ex:p true .
ex:s ex:p "typed"^^xsd:string .
ex:s ex:p 'single' .
ex:s ex:p """a "long" string""" .
`
	triples := decodeTurtle(t, input, factory)
	wantObjects := []Term{
		factory.TypedLiteral("42", XSDInteger),
		factory.TypedLiteral("3.14", XSDDecimal),
		factory.TypedLiteral("1.0e6", XSDDouble),
		factory.TypedLiteral("true", XSDBoolean),
		factory.TypedLiteral("typed", XSDString),
		factory.SimpleLiteral("single"),
		factory.SimpleLiteral(`a "long" string`),
	}
	if len(triples) != len(wantObjects) {
		t.Fatalf("expected %d triples, got %d", len(wantObjects), len(triples))
	}
	for i, want := range wantObjects {
		if triples[i].Object() != want {
			t.Fatalf("object %d: got %v, want %v", i, triples[i].Object(), want)
		}
	}
}

func TestTurtleBlankNodeLabels(t *testing.T) {
	factory := NewDataFactory()
	input := `@prefix ex: <http://example.org/> .
_:a ex:p ex:o .
_:a ex:q _:b .
`
	triples := decodeTurtle(t, input, factory)
	if len(triples) != 2 {
		t.Fatalf("expected 2 triples, got %d", len(triples))
	}
	if triples[0].Subject() != triples[1].Subject() {
		t.Fatalf("same label must yield equal blank nodes")
	}
	if triples[1].Object() == Term(triples[1].Subject()) {
		t.Fatalf("distinct labels must yield distinct blank nodes")
	}
}

func TestTurtleBlankNodePropertyLists(t *testing.T) {
	factory := NewDataFactory()
	input := `@prefix ex: <http://example.org/> .
ex:s ex:knows [ ex:name "Bob" ] .
[ ex:name "Eve" ] .
`
	triples := decodeTurtle(t, input, factory)
	if len(triples) != 3 {
		t.Fatalf("expected 3 triples, got %d", len(triples))
	}
	// The bracketed object is a fresh blank node carrying its own triple.
	inner, ok := triples[0].Object().(BlankNode)
	if !ok {
		t.Fatalf("expected blank node object, got %T", triples[0].Object())
	}
	if triples[1].Subject() != NamedOrBlankNode(inner) {
		t.Fatalf("property list triple must share the fresh node")
	}
	if triples[1].Object() != Term(factory.SimpleLiteral("Bob")) {
		t.Fatalf("unexpected object: %v", triples[1].Object())
	}
	// A standalone property list yields only its own triples.
	if triples[2].Object() != Term(factory.SimpleLiteral("Eve")) {
		t.Fatalf("unexpected object: %v", triples[2].Object())
	}
	if triples[2].Subject() == NamedOrBlankNode(inner) {
		t.Fatalf("each '[' must allocate a fresh blank node")
	}
}

func TestTurtleCollections(t *testing.T) {
	factory := NewDataFactory()
	input := `@prefix ex: <http://example.org/> .
ex:s ex:list ( ex:a ex:b ) .
ex:s ex:empty ( ) .
`
	triples := decodeTurtle(t, input, factory)
	if len(triples) != 6 {
		t.Fatalf("expected 6 triples, got %d", len(triples))
	}
	head, ok := triples[0].Object().(BlankNode)
	if !ok {
		t.Fatalf("expected blank node list head, got %T", triples[0].Object())
	}
	if triples[1] != factory.Triple(head, RDFFirst, factory.NamedNode("http://example.org/a")) {
		t.Fatalf("unexpected first link: %v", triples[1])
	}
	second, ok := triples[2].Object().(BlankNode)
	if !ok || triples[2].Predicate() != RDFRest {
		t.Fatalf("unexpected rest link: %v", triples[2])
	}
	if triples[3] != factory.Triple(second, RDFFirst, factory.NamedNode("http://example.org/b")) {
		t.Fatalf("unexpected second item: %v", triples[3])
	}
	if triples[4] != factory.Triple(second, RDFRest, RDFNil) {
		t.Fatalf("list must terminate in rdf:nil: %v", triples[4])
	}
	// The empty collection is rdf:nil itself.
	if triples[5].Object() != Term(RDFNil) {
		t.Fatalf("empty collection must be rdf:nil, got %v", triples[5].Object())
	}
}

func TestTurtleLongStringAcrossLines(t *testing.T) {
	factory := NewDataFactory()
	input := "@prefix ex: <http://example.org/> .\n" +
		"ex:s ex:p \"\"\"first line\n" +
		"second # not a comment\n" +
		"\n" +
		"  indented\"\"\" . # trailing comment\n"
	triples := decodeTurtle(t, input, factory)
	if len(triples) != 1 {
		t.Fatalf("expected 1 triple, got %d", len(triples))
	}
	want := "first line\nsecond # not a comment\n\n  indented"
	if got := triples[0].Object().Value(); got != want {
		t.Fatalf("long string content mangled:\ngot  %q\nwant %q", got, want)
	}
}

func TestTurtleLongStringSingleQuotes(t *testing.T) {
	factory := NewDataFactory()
	input := "@prefix ex: <http://example.org/> .\n" +
		"ex:s ex:p '''one\ntwo''' .\n"
	triples := decodeTurtle(t, input, factory)
	if len(triples) != 1 {
		t.Fatalf("expected 1 triple, got %d", len(triples))
	}
	if got := triples[0].Object().Value(); got != "one\ntwo" {
		t.Fatalf("got %q", got)
	}
}

func TestTurtleMultilineStatement(t *testing.T) {
	factory := NewDataFactory()
	input := `@prefix ex: <http://example.org/> .
ex:s
    ex:p
    "spread over
several lines" .
`
	triples := decodeTurtle(t, input, factory)
	if len(triples) != 1 {
		t.Fatalf("expected 1 triple, got %d", len(triples))
	}
}

func TestTurtleUndefinedPrefix(t *testing.T) {
	factory := NewDataFactory()
	dec, err := NewTripleDecoder(strings.NewReader("missing:s missing:p missing:o .\n"), FormatTurtle, factory)
	if err != nil {
		t.Fatalf("NewTripleDecoder: %v", err)
	}
	if _, err := dec.Next(); err == nil || err == io.EOF {
		t.Fatalf("expected error for undefined prefix")
	}
	var parseErr *ParseError
	if !errors.As(dec.Err(), &parseErr) {
		t.Fatalf("expected *ParseError, got %T", dec.Err())
	}
	if !strings.Contains(parseErr.Error(), "undefined prefix") {
		t.Fatalf("unexpected message: %v", parseErr)
	}
}

func TestTurtleStatementLimit(t *testing.T) {
	factory := NewDataFactory()
	opts := DecodeOptions{MaxStatementBytes: 32}
	input := `<http://example.org/s> <http://example.org/p> <http://example.org/o> .` + "\n"
	dec, err := NewTripleDecoderWithOptions(strings.NewReader(input), FormatTurtle, factory, opts)
	if err != nil {
		t.Fatalf("NewTripleDecoderWithOptions: %v", err)
	}
	if _, err := dec.Next(); !errors.Is(err, ErrStatementTooLong) {
		t.Fatalf("expected ErrStatementTooLong, got %v", err)
	}
}

func TestTurtleLineLimitReportsLine(t *testing.T) {
	factory := NewDataFactory()
	opts := DecodeOptions{MaxLineBytes: 40}
	input := "@prefix ex: <http://example.org/> .\n" +
		"ex:s ex:p \"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa\" .\n"
	dec, err := NewTripleDecoderWithOptions(strings.NewReader(input), FormatTurtle, factory, opts)
	if err != nil {
		t.Fatalf("NewTripleDecoderWithOptions: %v", err)
	}
	_, err = dec.Next()
	if !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("expected ErrLineTooLong, got %v", err)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Line != 2 {
		t.Fatalf("expected line 2, got %d", parseErr.Line)
	}
}

func TestTurtleCommentsInsideStrings(t *testing.T) {
	factory := NewDataFactory()
	input := `@prefix ex: <http://example.org/> .
ex:s ex:p "keep # this" . # drop this
`
	triples := decodeTurtle(t, input, factory)
	if len(triples) != 1 {
		t.Fatalf("expected 1 triple, got %d", len(triples))
	}
	if triples[0].Object().Value() != "keep # this" {
		t.Fatalf("got %q", triples[0].Object().Value())
	}
}
