package rdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	ld "github.com/piprate/json-gold/ld"
)

// JSONLDOptions configures JSON-LD processing.
type JSONLDOptions struct {
	// Context cancels JSON-LD decoding when done.
	Context context.Context
	// BaseIRI resolves relative IRIs during expansion.
	BaseIRI string
	// ProcessingMode controls JSON-LD version semantics:
	// "json-ld-1.0" or "json-ld-1.1".
	ProcessingMode string
	// DocumentLoader resolves remote contexts. Nil uses json-gold's
	// default HTTP loader.
	DocumentLoader ld.DocumentLoader
}

// jsonldDecoder replays the quads produced by a full JSON-LD expansion.
// JSON-LD cannot be parsed statement-by-statement, so the whole document
// is converted up front and streamed from memory.
type jsonldDecoder struct {
	quads []Quad
	index int
	err   error
}

func newJSONLDQuadDecoder(r io.Reader, factory DataFactory, opts JSONLDOptions) QuadDecoder {
	dec := &jsonldDecoder{}
	quads, err := decodeJSONLD(r, factory, opts)
	if err != nil {
		dec.err = err
		return dec
	}
	dec.quads = quads
	return dec
}

func (d *jsonldDecoder) Next() (Quad, error) {
	if d.err != nil {
		return Quad{}, d.err
	}
	if d.index >= len(d.quads) {
		return Quad{}, io.EOF
	}
	q := d.quads[d.index]
	d.index++
	return q, nil
}

func (d *jsonldDecoder) Err() error   { return d.err }
func (d *jsonldDecoder) Close() error { return nil }

// jsonldTripleDecoder narrows the quad stream to triples, dropping graph
// names.
type jsonldTripleDecoder struct {
	inner QuadDecoder
}

func newJSONLDTripleDecoder(r io.Reader, factory DataFactory, opts JSONLDOptions) TripleDecoder {
	return &jsonldTripleDecoder{inner: newJSONLDQuadDecoder(r, factory, opts)}
}

func (d *jsonldTripleDecoder) Next() (Triple, error) {
	quad, err := d.inner.Next()
	if err != nil {
		return Triple{}, err
	}
	return quad.ToTriple(), nil
}

func (d *jsonldTripleDecoder) Err() error   { return d.inner.Err() }
func (d *jsonldTripleDecoder) Close() error { return d.inner.Close() }

// decodeJSONLD expands the document with json-gold, serializes the
// resulting dataset to N-Quads, and re-parses that through the N-Quads
// decoder so every term is built by the factory.
func decodeJSONLD(r io.Reader, factory DataFactory, opts JSONLDOptions) ([]Quad, error) {
	if err := checkDecodeContext(opts.Context); err != nil {
		return nil, err
	}
	var input interface{}
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return nil, wrapParseError("jsonld", "", 0, err)
	}

	proc := ld.NewJsonLdProcessor()
	result, err := proc.ToRDF(input, newJSONGoldOptions(opts))
	if err != nil {
		return nil, wrapParseError("jsonld", "", 0, err)
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return nil, wrapParseError("jsonld", "", 0, fmt.Errorf("unexpected ToRDF result %T", result))
	}
	serializer := &ld.NQuadRDFSerializer{}
	serialized, err := serializer.Serialize(dataset)
	if err != nil {
		return nil, wrapParseError("jsonld", "", 0, err)
	}
	nquads, ok := serialized.(string)
	if !ok {
		return nil, wrapParseError("jsonld", "", 0, fmt.Errorf("unexpected N-Quads result %T", serialized))
	}

	var quads []Quad
	err = ParseQuads(opts.Context, strings.NewReader(nquads), FormatNQuads, factory, QuadHandlerFunc(func(q Quad) error {
		quads = append(quads, q)
		return nil
	}))
	if err != nil {
		return nil, err
	}
	return quads, nil
}

func newJSONGoldOptions(opts JSONLDOptions) *ld.JsonLdOptions {
	goldOpts := ld.NewJsonLdOptions(opts.BaseIRI)
	if opts.ProcessingMode != "" {
		goldOpts.ProcessingMode = opts.ProcessingMode
	}
	if opts.DocumentLoader != nil {
		goldOpts.DocumentLoader = opts.DocumentLoader
	}
	return goldOpts
}

// jsonldEncoder buffers statements as N-Quads and converts the batch to
// a JSON-LD document on Close via json-gold's FromRDF.
type jsonldEncoder struct {
	writer io.Writer
	buf    bytes.Buffer
	closed bool
	err    error
}

func newJSONLDEncoder(w io.Writer) TripleEncoder {
	return &jsonldEncoder{writer: w}
}

func (e *jsonldEncoder) Write(t TripleLike) error {
	if e.err != nil {
		return e.err
	}
	if e.closed {
		return fmt.Errorf("jsonld: writer closed")
	}
	if t.Subject() == nil || t.Object() == nil {
		return fmt.Errorf("jsonld: missing statement fields")
	}
	line := t.Subject().String() + " " + t.Predicate().String() + " " + t.Object().String() + " .\n"
	if _, err := e.buf.WriteString(line); err != nil {
		e.err = err
		return err
	}
	return nil
}

func (e *jsonldEncoder) Flush() error { return e.err }

func (e *jsonldEncoder) Close() error {
	if e.closed {
		return e.err
	}
	e.closed = true

	proc := ld.NewJsonLdProcessor()
	goldOpts := ld.NewJsonLdOptions("")
	goldOpts.Format = "application/n-quads"
	doc, err := proc.FromRDF(e.buf.String(), goldOpts)
	if err != nil {
		e.err = err
		return err
	}
	enc := json.NewEncoder(e.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		e.err = err
		return err
	}
	return nil
}
