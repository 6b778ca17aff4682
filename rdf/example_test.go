package rdf_test

import (
	"fmt"
	"io"
	"strings"

	"github.com/tobias47n9e/rudf/rdf"
)

func ExampleDataFactory() {
	factory := rdf.NewDataFactory()
	s := factory.NamedNode("http://example.org/s")
	p := factory.NamedNode("http://example.org/p")
	o := factory.LanguageTaggedLiteral("hello", "en")

	fmt.Println(factory.Triple(s, p, o))
	fmt.Println(factory.Quad(s, p, o, factory.NamedNode("http://example.org/g")))
	// Output:
	// <http://example.org/s> <http://example.org/p> "hello"@en .
	// <http://example.org/s> <http://example.org/p> "hello"@en <http://example.org/g> .
}

func ExampleDataFactory_NewBlankNode() {
	factory := rdf.NewDataFactory()
	fmt.Println(factory.NewBlankNode())
	fmt.Println(factory.NewBlankNode())
	// Output:
	// _:1
	// _:2
}

func ExampleNewTripleDecoder() {
	input := `@prefix ex: <http://example.org/> .
ex:alice ex:name "Alice" ;
         ex:age 30 .
`
	factory := rdf.NewDataFactory()
	dec, err := rdf.NewTripleDecoder(strings.NewReader(input), rdf.FormatTurtle, factory)
	if err != nil {
		panic(err)
	}
	defer dec.Close()

	for {
		triple, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			panic(err)
		}
		fmt.Println(triple)
	}
	// Output:
	// <http://example.org/alice> <http://example.org/name> "Alice" .
	// <http://example.org/alice> <http://example.org/age> "30"^^<http://www.w3.org/2001/XMLSchema#integer> .
}
