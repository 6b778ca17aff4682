// Package rdf implements the RDF 1.1 data model with a factory-driven
// construction API and streaming syntax decoders/encoders.
//
// Terms are immutable value types. NamedNode, BlankNode and Literal
// compare structurally with == and can serve directly as map keys, which
// is the contract stores rely on for statement deduplication. The closed
// unions Term and NamedOrBlankNode are sealed interfaces: widening a
// concrete term into a union is plain interface satisfaction, narrowing
// a Term back down is an explicit type assertion.
//
// Every term and statement is built through a DataFactory:
//
//	factory := rdf.NewDataFactory()
//	s := factory.NamedNode("http://example.org/s")
//	p := factory.NamedNode("http://example.org/p")
//	o := factory.LanguageTaggedLiteral("hello", "en")
//	triple := factory.Triple(s, p, o)
//	fmt.Println(triple) // <http://example.org/s> <http://example.org/p> "hello"@en .
//
// Copies of a DataFactory share one mutex-guarded blank node counter, so
// NewBlankNode never hands out a duplicate identifier no matter how many
// goroutines allocate concurrently. The factory performs no validation:
// IRI syntax, language tag grammar, and blank node label uniqueness are
// the responsibility of the producing parser.
//
// Decoders are pull-style and factory-driven:
//
//	dec, err := rdf.NewTripleDecoder(r, rdf.FormatTurtle, factory)
//	if err != nil {
//	    // handle error
//	}
//	defer dec.Close()
//	for {
//	    triple, err := dec.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // handle error
//	    }
//	    // process triple
//	}
//
// Encoders are push-style and consume the TripleLike/QuadLike capability
// interfaces, so both Triple and Quad values can be written. Supported
// formats: Turtle and N-Triples (triples), N-Quads (quads), and JSON-LD
// (both, via json-gold).
//
// For unsupported formats the constructors return ErrUnsupportedFormat.
// Decoder limits for untrusted input are configured with DecodeOptions.
package rdf
