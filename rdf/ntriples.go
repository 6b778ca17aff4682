package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ntDecoder is the shared line-oriented core for N-Triples and N-Quads.
type ntDecoder struct {
	reader     *bufio.Reader
	factory    DataFactory
	opts       DecodeOptions
	err        error
	line       int
	allowGraph bool
	format     string
}

func newNTriplesDecoder(r io.Reader, factory DataFactory, opts DecodeOptions) TripleDecoder {
	return &ntTripleDecoder{core: &ntDecoder{
		reader:  bufio.NewReader(r),
		factory: factory,
		opts:    opts,
		format:  "ntriples",
	}}
}

func newNQuadsDecoder(r io.Reader, factory DataFactory, opts DecodeOptions) QuadDecoder {
	return &ntDecoder{
		reader:     bufio.NewReader(r),
		factory:    factory,
		opts:       opts,
		allowGraph: true,
		format:     "nquads",
	}
}

func (d *ntDecoder) Next() (Quad, error) {
	if d.err != nil {
		return Quad{}, d.err
	}
	for {
		if err := checkDecodeContext(d.opts.Context); err != nil {
			d.err = err
			return Quad{}, err
		}
		line, err := readLineWithLimit(d.reader, d.opts.MaxLineBytes)
		if err != nil {
			if err == io.EOF {
				return Quad{}, io.EOF
			}
			d.err = wrapParseError(d.format, "", d.line+1, err)
			return Quad{}, d.err
		}
		d.line++
		trimmed := strings.TrimSpace(stripComment(line))
		if trimmed == "" {
			continue
		}
		quad, err := d.parseStatement(trimmed)
		if err != nil {
			d.err = d.wrapError(trimmed, err)
			return Quad{}, d.err
		}
		return quad, nil
	}
}

func (d *ntDecoder) Err() error   { return d.err }
func (d *ntDecoder) Close() error { return nil }

func (d *ntDecoder) wrapError(statement string, err error) error {
	if !d.opts.DebugStatements {
		statement = ""
	}
	return wrapParseError(d.format, statement, d.line, err)
}

func (d *ntDecoder) parseStatement(line string) (Quad, error) {
	cursor := &ntCursor{input: line, factory: d.factory}
	subject, err := cursor.parseSubject()
	if err != nil {
		return Quad{}, err
	}
	predicate, err := cursor.parseIRI()
	if err != nil {
		return Quad{}, err
	}
	object, err := cursor.parseObject()
	if err != nil {
		return Quad{}, err
	}

	var graph NamedOrBlankNode
	if d.allowGraph {
		graph, err = cursor.parseOptionalGraphName()
		if err != nil {
			return Quad{}, err
		}
	}
	if !cursor.consume('.') {
		return Quad{}, cursor.errorf("expected '.' at end of statement")
	}
	cursor.skipWS()
	if cursor.pos < len(cursor.input) {
		return Quad{}, cursor.errorf("unexpected trailing content")
	}
	return d.factory.Quad(subject, predicate, object, graph), nil
}

// ntTripleDecoder narrows the N-Triples stream to Triple values.
type ntTripleDecoder struct {
	core *ntDecoder
}

func (d *ntTripleDecoder) Next() (Triple, error) {
	quad, err := d.core.Next()
	if err != nil {
		return Triple{}, err
	}
	return quad.ToTriple(), nil
}

func (d *ntTripleDecoder) Err() error   { return d.core.Err() }
func (d *ntTripleDecoder) Close() error { return d.core.Close() }

type ntCursor struct {
	input   string
	pos     int
	factory DataFactory
}

func (c *ntCursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return
		}
	}
}

func (c *ntCursor) consume(ch byte) bool {
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *ntCursor) parseSubject() (NamedOrBlankNode, error) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of statement")
	}
	switch {
	case c.input[c.pos] == '<':
		return c.parseIRI()
	case strings.HasPrefix(c.input[c.pos:], "_:"):
		return c.parseBlankNode()
	default:
		return nil, c.errorf("expected IRI or blank node")
	}
}

func (c *ntCursor) parseObject() (Term, error) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of statement")
	}
	switch {
	case c.input[c.pos] == '<':
		return c.parseIRI()
	case strings.HasPrefix(c.input[c.pos:], "_:"):
		return c.parseBlankNode()
	case c.input[c.pos] == '"':
		return c.parseLiteral()
	default:
		return nil, c.errorf("unexpected token")
	}
}

func (c *ntCursor) parseOptionalGraphName() (NamedOrBlankNode, error) {
	c.skipWS()
	if c.pos >= len(c.input) || c.input[c.pos] == '.' {
		return nil, nil
	}
	return c.parseSubject()
}

func (c *ntCursor) parseIRI() (NamedNode, error) {
	c.skipWS()
	if !c.consume('<') {
		return NamedNode{}, c.errorf("expected IRI")
	}
	start := c.pos
	for c.pos < len(c.input) && c.input[c.pos] != '>' {
		c.pos++
	}
	if c.pos >= len(c.input) {
		return NamedNode{}, c.errorf("unterminated IRI")
	}
	raw := c.input[start:c.pos]
	c.pos++
	iri, err := unescapeString(raw)
	if err != nil {
		return NamedNode{}, c.errorf("bad IRI escape: %v", err)
	}
	return c.factory.NamedNode(iri), nil
}

func (c *ntCursor) parseBlankNode() (BlankNode, error) {
	c.skipWS()
	if !strings.HasPrefix(c.input[c.pos:], "_:") {
		return BlankNode{}, c.errorf("expected blank node")
	}
	c.pos += 2
	start := c.pos
	for c.pos < len(c.input) && !isNTDelimiter(c.input[c.pos]) {
		c.pos++
	}
	if start == c.pos {
		return BlankNode{}, c.errorf("blank node identifier missing")
	}
	// Same label, same node: factory.BlankNode is deterministic on the
	// identifier string, which is what label scoping requires.
	return c.factory.BlankNode(c.input[start:c.pos]), nil
}

func (c *ntCursor) parseLiteral() (Literal, error) {
	c.skipWS()
	if !c.consume('"') {
		return Literal{}, c.errorf("expected literal")
	}
	start := c.pos
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		if ch == '\\' {
			c.pos += 2
			continue
		}
		if ch == '"' {
			break
		}
		c.pos++
	}
	if c.pos >= len(c.input) {
		return Literal{}, c.errorf("unterminated literal")
	}
	lexical, err := unescapeString(c.input[start:c.pos])
	if err != nil {
		return Literal{}, c.errorf("bad literal escape: %v", err)
	}
	c.pos++ // closing quote

	if strings.HasPrefix(c.input[c.pos:], "@") {
		c.pos++
		start := c.pos
		for c.pos < len(c.input) && !isNTDelimiter(c.input[c.pos]) {
			c.pos++
		}
		if start == c.pos {
			return Literal{}, c.errorf("empty language tag")
		}
		return c.factory.LanguageTaggedLiteral(lexical, c.input[start:c.pos]), nil
	}
	if strings.HasPrefix(c.input[c.pos:], "^^") {
		c.pos += 2
		datatype, err := c.parseIRI()
		if err != nil {
			return Literal{}, err
		}
		return c.factory.TypedLiteral(lexical, datatype), nil
	}
	return c.factory.SimpleLiteral(lexical), nil
}

func (c *ntCursor) errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

func isNTDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '.', '<', '"':
		return true
	default:
		return false
	}
}

type ntEncoder struct {
	writer *bufio.Writer
	err    error
}

func newNTriplesEncoder(w io.Writer) TripleEncoder {
	return &ntEncoder{writer: bufio.NewWriter(w)}
}

func (e *ntEncoder) Write(t TripleLike) error {
	if e.err != nil {
		return e.err
	}
	if t.Subject() == nil || t.Object() == nil {
		return fmt.Errorf("ntriples: missing statement fields")
	}
	line := t.Subject().String() + " " + t.Predicate().String() + " " + t.Object().String() + " .\n"
	if _, err := e.writer.WriteString(line); err != nil {
		e.err = err
		return err
	}
	return nil
}

func (e *ntEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.writer.Flush()
}

func (e *ntEncoder) Close() error { return e.Flush() }

type nqEncoder struct {
	writer *bufio.Writer
	err    error
}

func newNQuadsEncoder(w io.Writer) QuadEncoder {
	return &nqEncoder{writer: bufio.NewWriter(w)}
}

func (e *nqEncoder) Write(q QuadLike) error {
	if e.err != nil {
		return e.err
	}
	if q.Subject() == nil || q.Object() == nil {
		return fmt.Errorf("nquads: missing statement fields")
	}
	line := q.Subject().String() + " " + q.Predicate().String() + " " + q.Object().String()
	if graph := q.GraphName(); graph != nil {
		line += " " + graph.String()
	}
	line += " .\n"
	if _, err := e.writer.WriteString(line); err != nil {
		e.err = err
		return err
	}
	return nil
}

func (e *nqEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.writer.Flush()
}

func (e *nqEncoder) Close() error { return e.Flush() }
