package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// turtleDecoder streams triples from a Turtle document. Directives
// (@prefix, @base and their SPARQL forms) update decoder state; every
// produced term is built through the data factory, and blank nodes
// introduced by [ ] property lists or ( ) collections draw fresh
// identifiers from the factory's shared counter.
type turtleDecoder struct {
	reader   *bufio.Reader
	factory  DataFactory
	opts     DecodeOptions
	err      error
	line     int
	prefixes map[string]string
	base     string
	pending  []Triple
}

func newTurtleDecoder(r io.Reader, factory DataFactory, opts DecodeOptions) TripleDecoder {
	return &turtleDecoder{
		reader:   bufio.NewReader(r),
		factory:  factory,
		opts:     opts,
		prefixes: map[string]string{},
	}
}

func (d *turtleDecoder) Next() (Triple, error) {
	if d.err != nil {
		return Triple{}, d.err
	}
	if len(d.pending) > 0 {
		triple := d.pending[0]
		d.pending = d.pending[1:]
		return triple, nil
	}

	for {
		if err := checkDecodeContext(d.opts.Context); err != nil {
			d.err = err
			return Triple{}, err
		}

		statement, err := d.readStatement()
		if err != nil {
			if err != io.EOF {
				d.err = err
			}
			return Triple{}, err
		}
		if statement == "" {
			continue
		}

		triples, err := d.parseStatement(statement)
		if err != nil {
			d.err = d.wrapError(statement, err)
			return Triple{}, d.err
		}
		if len(triples) == 0 {
			continue
		}
		if len(triples) > 1 {
			d.pending = triples[1:]
		}
		return triples[0], nil
	}
}

func (d *turtleDecoder) Err() error   { return d.err }
func (d *turtleDecoder) Close() error { return nil }

func (d *turtleDecoder) wrapError(statement string, err error) error {
	if !d.opts.DebugStatements {
		statement = ""
	}
	return wrapParseError("turtle", statement, d.line, err)
}

// readStatement accumulates lines until a complete statement (ending
// with a top-level '.') is available. Directive lines are consumed in
// place and yield an empty statement. Lines inside an open long string
// are content and are kept verbatim, newlines and indentation included.
func (d *turtleDecoder) readStatement() (string, error) {
	var statement strings.Builder
	var strState turtleLineState
	for {
		line, err := readLineWithLimit(d.reader, d.opts.MaxLineBytes)
		if err != nil {
			if err == io.EOF {
				if statement.Len() == 0 {
					return "", io.EOF
				}
				return strings.TrimSpace(statement.String()), nil
			}
			return "", wrapParseError("turtle", "", d.line+1, err)
		}
		d.line++
		openAtStart := strState.inLongString
		processed := stripCommentWithState(line, &strState)
		if openAtStart {
			statement.WriteString(processed)
		} else {
			trimmed := strings.TrimLeft(processed, " \t\r\n")
			if !strState.inLongString {
				trimmed = strings.TrimRight(trimmed, " \t\r\n")
			}
			if trimmed == "" {
				continue
			}
			if statement.Len() == 0 && d.handleDirective(trimmed) {
				return "", nil
			}
			if statement.Len() > 0 {
				statement.WriteString(" ")
			}
			statement.WriteString(trimmed)
		}
		if d.opts.MaxStatementBytes > 0 && statement.Len() > d.opts.MaxStatementBytes {
			return "", wrapParseError("turtle", "", d.line, ErrStatementTooLong)
		}
		if strState.inLongString {
			continue
		}
		stmt := strings.TrimSpace(statement.String())
		if isStatementComplete(stmt) {
			return stmt, nil
		}
	}
}

func (d *turtleDecoder) handleDirective(line string) bool {
	if prefix, iri, ok := parsePrefixDirective(line); ok {
		d.prefixes[prefix] = d.resolve(iri)
		return true
	}
	if iri, ok := parseBaseDirective(line); ok {
		d.base = d.resolve(iri)
		return true
	}
	return false
}

func (d *turtleDecoder) resolve(iri string) string {
	return resolveIRI(d.base, iri)
}

func (d *turtleDecoder) parseStatement(statement string) ([]Triple, error) {
	cursor := &turtleCursor{
		input:    statement,
		prefixes: d.prefixes,
		base:     d.base,
		factory:  d.factory,
	}
	subject, propertyList, err := cursor.parseSubject()
	if err != nil {
		return nil, err
	}
	cursor.skipWS()
	// A blank node property list may stand alone as a whole statement.
	if propertyList && cursor.pos < len(cursor.input) && cursor.input[cursor.pos] == '.' {
		cursor.pos++
		if err := cursor.ensureEnd(); err != nil {
			return nil, err
		}
		return cursor.extra, nil
	}

	triples, err := cursor.parsePredicateObjectList(subject)
	if err != nil {
		return nil, err
	}
	if !cursor.consume('.') {
		return nil, cursor.errorf("expected '.' at end of statement")
	}
	if err := cursor.ensureEnd(); err != nil {
		return nil, err
	}
	return append(triples, cursor.extra...), nil
}

// parsePrefixDirective recognizes "@prefix p: <iri> ." and the SPARQL
// form "PREFIX p: <iri>".
func parsePrefixDirective(line string) (string, string, bool) {
	at := strings.HasPrefix(line, "@prefix")
	bare := !at && strings.HasPrefix(strings.ToUpper(line), "PREFIX") && !strings.HasPrefix(line, "@")
	if !at && !bare {
		return "", "", false
	}
	parts := strings.Fields(line)
	if len(parts) < 3 || !strings.HasSuffix(parts[1], ":") {
		return "", "", false
	}
	prefix := strings.TrimSuffix(parts[1], ":")
	iriPart := parts[2]
	if !strings.HasPrefix(iriPart, "<") {
		return "", "", false
	}
	closeIdx := strings.Index(iriPart, ">")
	if closeIdx <= 0 {
		return "", "", false
	}
	if at && !strings.HasSuffix(strings.TrimSpace(line), ".") {
		return "", "", false
	}
	return prefix, iriPart[1:closeIdx], true
}

// parseBaseDirective recognizes "@base <iri> ." and the SPARQL form
// "BASE <iri>".
func parseBaseDirective(line string) (string, bool) {
	at := strings.HasPrefix(line, "@base")
	bare := !at && strings.HasPrefix(strings.ToUpper(line), "BASE") && !strings.HasPrefix(line, "@")
	if !at && !bare {
		return "", false
	}
	rest := line
	if at {
		rest = strings.TrimSpace(line[len("@base"):])
	} else {
		rest = strings.TrimSpace(line[len("BASE"):])
	}
	if !strings.HasPrefix(rest, "<") {
		return "", false
	}
	closeIdx := strings.Index(rest, ">")
	if closeIdx <= 0 {
		return "", false
	}
	return rest[1:closeIdx], true
}

type turtleCursor struct {
	input    string
	pos      int
	prefixes map[string]string
	base     string
	factory  DataFactory
	extra    []Triple // triples expanded from property lists and collections
}

func (c *turtleCursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return
		}
	}
}

func (c *turtleCursor) consume(ch byte) bool {
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *turtleCursor) peek() byte {
	if c.pos < len(c.input) {
		return c.input[c.pos]
	}
	return 0
}

func (c *turtleCursor) ensureEnd() error {
	c.skipWS()
	if c.pos < len(c.input) {
		return c.errorf("unexpected trailing content %q", c.input[c.pos:])
	}
	return nil
}

// parseSubject returns the subject term and whether it came from a
// bracketed property list (which may stand alone).
func (c *turtleCursor) parseSubject() (NamedOrBlankNode, bool, error) {
	c.skipWS()
	switch {
	case c.peek() == '<':
		node, err := c.parseIRIRef()
		return node, false, err
	case strings.HasPrefix(c.input[c.pos:], "_:"):
		node, err := c.parseBlankNodeLabel()
		return node, false, err
	case c.peek() == '[':
		node, err := c.parseBlankNodePropertyList()
		return node, true, err
	case c.peek() == '(':
		node, err := c.parseCollection()
		return node, false, err
	default:
		node, err := c.parsePrefixedName()
		return node, false, err
	}
}

func (c *turtleCursor) parsePredicate() (NamedNode, error) {
	c.skipWS()
	if c.peek() == '<' {
		return c.parseIRIRef()
	}
	// "a" abbreviates rdf:type.
	if c.peek() == 'a' && (c.pos+1 >= len(c.input) || isTurtleDelimiter(c.input[c.pos+1])) {
		c.pos++
		return RDFType, nil
	}
	return c.parsePrefixedName()
}

func (c *turtleCursor) parseObject() (Term, error) {
	c.skipWS()
	switch {
	case c.peek() == '<':
		return c.parseIRIRef()
	case strings.HasPrefix(c.input[c.pos:], "_:"):
		return c.parseBlankNodeLabel()
	case c.peek() == '[':
		return c.parseBlankNodePropertyList()
	case c.peek() == '(':
		return c.parseCollection()
	case c.peek() == '"' || c.peek() == '\'':
		return c.parseQuotedLiteral()
	default:
		if lit, ok := c.tryParseNumericLiteral(); ok {
			return lit, nil
		}
		if lit, ok := c.tryParseBooleanLiteral(); ok {
			return lit, nil
		}
		return c.parsePrefixedName()
	}
}

// parsePredicateObjectList parses "p1 o1, o2; p2 o3" pairs for a fixed
// subject.
func (c *turtleCursor) parsePredicateObjectList(subject NamedOrBlankNode) ([]Triple, error) {
	var triples []Triple
	for {
		c.skipWS()
		// A dangling ';' before the final '.' is permitted.
		if c.peek() == '.' || c.pos >= len(c.input) || c.peek() == ']' {
			return triples, nil
		}
		predicate, err := c.parsePredicate()
		if err != nil {
			return nil, err
		}
		for {
			object, err := c.parseObject()
			if err != nil {
				return nil, err
			}
			triples = append(triples, c.factory.Triple(subject, predicate, object))
			if !c.consume(',') {
				break
			}
		}
		if !c.consume(';') {
			return triples, nil
		}
	}
}

func (c *turtleCursor) parseIRIRef() (NamedNode, error) {
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
	return c.factory.NamedNode(resolveIRI(c.base, iri)), nil
}

func (c *turtleCursor) parseBlankNodeLabel() (BlankNode, error) {
	if !strings.HasPrefix(c.input[c.pos:], "_:") {
		return BlankNode{}, c.errorf("expected blank node")
	}
	c.pos += 2
	start := c.pos
	for c.pos < len(c.input) && !isTurtleDelimiter(c.input[c.pos]) {
		c.pos++
	}
	label := c.input[start:c.pos]
	label = c.trimStatementDot(label)
	if label == "" {
		return BlankNode{}, c.errorf("blank node identifier missing")
	}
	// Repeated mentions of the same label yield the same node, as the
	// concrete syntax's label scoping requires.
	return c.factory.BlankNode(label), nil
}

func (c *turtleCursor) parsePrefixedName() (NamedNode, error) {
	c.skipWS()
	start := c.pos
	for c.pos < len(c.input) && !isTurtleDelimiter(c.input[c.pos]) {
		if c.input[c.pos] == '\\' && c.pos+1 < len(c.input) {
			c.pos += 2
			continue
		}
		c.pos++
	}
	word := c.trimStatementDot(c.input[start:c.pos])
	colon := strings.Index(word, ":")
	if colon < 0 {
		return NamedNode{}, c.errorf("expected prefixed name, got %q", word)
	}
	prefix := word[:colon]
	local := unescapeLocalName(word[colon+1:])
	namespace, ok := c.prefixes[prefix]
	if !ok {
		return NamedNode{}, c.errorf("undefined prefix %q", prefix)
	}
	return c.factory.NamedNode(namespace + local), nil
}

// trimStatementDot removes a trailing '.' that terminates the whole
// statement rather than belonging to the token, and rewinds the cursor
// so the terminator stays consumable.
func (c *turtleCursor) trimStatementDot(word string) string {
	if !strings.HasSuffix(word, ".") {
		return word
	}
	if strings.TrimSpace(c.input[c.pos:]) != "" {
		return word
	}
	c.pos--
	return word[:len(word)-1]
}

func (c *turtleCursor) parseQuotedLiteral() (Literal, error) {
	lexical, err := c.parseStringBody()
	if err != nil {
		return Literal{}, err
	}
	if c.peek() == '@' {
		c.pos++
		start := c.pos
		for c.pos < len(c.input) && !isTurtleDelimiter(c.input[c.pos]) {
			c.pos++
		}
		tag := c.trimStatementDot(c.input[start:c.pos])
		if tag == "" {
			return Literal{}, c.errorf("empty language tag")
		}
		return c.factory.LanguageTaggedLiteral(lexical, tag), nil
	}
	if strings.HasPrefix(c.input[c.pos:], "^^") {
		c.pos += 2
		var datatype NamedNode
		var err error
		if c.peek() == '<' {
			datatype, err = c.parseIRIRef()
		} else {
			datatype, err = c.parsePrefixedName()
		}
		if err != nil {
			return Literal{}, err
		}
		return c.factory.TypedLiteral(lexical, datatype), nil
	}
	return c.factory.SimpleLiteral(lexical), nil
}

func (c *turtleCursor) parseStringBody() (string, error) {
	quote := c.peek()
	if quote != '"' && quote != '\'' {
		return "", c.errorf("expected string literal")
	}
	long := strings.HasPrefix(c.input[c.pos:], strings.Repeat(string(quote), 3))
	if long {
		c.pos += 3
		end := strings.Index(c.input[c.pos:], strings.Repeat(string(quote), 3))
		if end < 0 {
			return "", c.errorf("unterminated long string")
		}
		raw := c.input[c.pos : c.pos+end]
		c.pos += end + 3
		return unescapeString(raw)
	}
	c.pos++
	start := c.pos
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		if ch == '\\' {
			c.pos += 2
			continue
		}
		if ch == quote {
			raw := c.input[start:c.pos]
			c.pos++
			return unescapeString(raw)
		}
		c.pos++
	}
	return "", c.errorf("unterminated string literal")
}

func (c *turtleCursor) tryParseNumericLiteral() (Literal, bool) {
	start := c.pos
	pos := c.pos
	seenDigit := false
	seenDot := false
	seenExp := false
	for pos < len(c.input) {
		ch := c.input[pos]
		switch {
		case ch >= '0' && ch <= '9':
			seenDigit = true
		case ch == '+' || ch == '-':
			if pos != start && !(c.input[pos-1] == 'e' || c.input[pos-1] == 'E') {
				goto done
			}
		case ch == '.':
			if seenDot || seenExp {
				goto done
			}
			seenDot = true
		case ch == 'e' || ch == 'E':
			if seenExp || !seenDigit {
				goto done
			}
			seenExp = true
		default:
			goto done
		}
		pos++
	}
done:
	if !seenDigit {
		return Literal{}, false
	}
	word := c.input[start:pos]
	// A trailing '.' terminates the statement, not the number.
	rest := strings.TrimSpace(c.input[pos:])
	if strings.HasSuffix(word, ".") && rest == "" {
		word = word[:len(word)-1]
		pos--
		if seenDot && !strings.Contains(word, ".") {
			seenDot = false
		}
	}
	if word == "" || word == "+" || word == "-" {
		return Literal{}, false
	}
	next := byte(0)
	if pos < len(c.input) {
		next = c.input[pos]
	}
	if next != 0 && !isTurtleDelimiter(next) {
		return Literal{}, false
	}
	c.pos = pos
	switch {
	case seenExp:
		return c.factory.TypedLiteral(word, XSDDouble), true
	case seenDot:
		return c.factory.TypedLiteral(word, XSDDecimal), true
	default:
		return c.factory.TypedLiteral(word, XSDInteger), true
	}
}

func (c *turtleCursor) tryParseBooleanLiteral() (Literal, bool) {
	for _, word := range []string{"true", "false"} {
		if !strings.HasPrefix(c.input[c.pos:], word) {
			continue
		}
		end := c.pos + len(word)
		if end < len(c.input) && !isTurtleDelimiter(c.input[end]) {
			continue
		}
		c.pos = end
		return c.factory.TypedLiteral(word, XSDBoolean), true
	}
	return Literal{}, false
}

// parseCollection parses "( o1 o2 ... )" into an rdf:first/rdf:rest
// chain of fresh blank nodes and returns the head. The empty collection
// is rdf:nil.
func (c *turtleCursor) parseCollection() (NamedOrBlankNode, error) {
	if !c.consume('(') {
		return nil, c.errorf("expected '('")
	}
	var head NamedOrBlankNode
	var tail BlankNode
	for {
		c.skipWS()
		if c.peek() == ')' {
			c.pos++
			break
		}
		if c.pos >= len(c.input) {
			return nil, c.errorf("unterminated collection")
		}
		object, err := c.parseObject()
		if err != nil {
			return nil, err
		}
		node := c.factory.NewBlankNode()
		if head == nil {
			head = node
		} else {
			c.extra = append(c.extra, c.factory.Triple(tail, RDFRest, node))
		}
		c.extra = append(c.extra, c.factory.Triple(node, RDFFirst, object))
		tail = node
	}
	if head == nil {
		return RDFNil, nil
	}
	c.extra = append(c.extra, c.factory.Triple(tail, RDFRest, RDFNil))
	return head, nil
}

// parseBlankNodePropertyList parses "[ p1 o1 ; p2 o2 ]" into a fresh
// blank node with its triples appended to the expansion list.
func (c *turtleCursor) parseBlankNodePropertyList() (BlankNode, error) {
	if !c.consume('[') {
		return BlankNode{}, c.errorf("expected '['")
	}
	node := c.factory.NewBlankNode()
	c.skipWS()
	if c.peek() == ']' {
		c.pos++
		return node, nil
	}
	triples, err := c.parsePredicateObjectList(node)
	if err != nil {
		return BlankNode{}, err
	}
	if !c.consume(']') {
		return BlankNode{}, c.errorf("unterminated blank node property list")
	}
	c.extra = append(c.extra, triples...)
	return node, nil
}

func (c *turtleCursor) errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

func isTurtleDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', ';', ',', ')', ']', '(', '[', '"', '\'', '<', '>':
		return true
	default:
		return false
	}
}

// unescapeLocalName removes PN_LOCAL_ESC backslashes from a prefixed
// name's local part.
func unescapeLocalName(local string) string {
	if !strings.ContainsRune(local, '\\') {
		return local
	}
	var builder strings.Builder
	for i := 0; i < len(local); i++ {
		if local[i] == '\\' && i+1 < len(local) {
			i++
			builder.WriteByte(local[i])
			continue
		}
		builder.WriteByte(local[i])
	}
	return builder.String()
}
