package rdf

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Unicode surrogate pair constants.
const (
	surrogateHighStart = 0xD800
	surrogateHighEnd   = 0xDBFF
	surrogateLowStart  = 0xDC00
	surrogateLowEnd    = 0xDFFF
	surrogateBase      = 0x10000
)

func checkDecodeContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func readLineWithLimit(reader *bufio.Reader, maxBytes int) (string, error) {
	if maxBytes <= 0 {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF && len(line) > 0 {
				return line, nil
			}
			return "", err
		}
		return line, nil
	}

	var buffer []byte
	for {
		part, err := reader.ReadSlice('\n')
		buffer = append(buffer, part...)
		if len(buffer) > maxBytes {
			discardLine(reader)
			return "", ErrLineTooLong
		}
		if err == nil {
			return string(buffer), nil
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err == io.EOF && len(buffer) > 0 {
			return string(buffer), nil
		}
		return "", err
	}
}

func discardLine(reader *bufio.Reader) {
	for {
		_, err := reader.ReadSlice('\n')
		if err != bufio.ErrBufferFull {
			return
		}
	}
}

// stripComment removes a trailing '#' comment, respecting strings and
// IRIs so fragment identifiers survive.
func stripComment(line string) string {
	inString := false
	inIRI := false
	stringChar := byte(0)

	for i := 0; i < len(line); i++ {
		ch := line[i]
		if inString {
			if ch == '\\' {
				i++
				continue
			}
			if ch == stringChar {
				inString = false
			}
			continue
		}
		if inIRI {
			if ch == '>' {
				inIRI = false
			}
			continue
		}
		switch ch {
		case '"', '\'':
			inString = true
			stringChar = ch
		case '<':
			inIRI = true
		case '#':
			return line[:i]
		}
	}
	return line
}

// turtleLineState carries open-long-string state across physical lines
// so that a """…""" literal spanning lines keeps its content verbatim.
type turtleLineState struct {
	inLongString bool
	quote        byte
}

// stripCommentWithState removes a trailing '#' comment outside strings
// and IRIs, tracking long strings across line boundaries through st.
// Everything inside an open long string is content, '#' included.
func stripCommentWithState(line string, st *turtleLineState) string {
	inString := false
	inIRI := false
	stringChar := byte(0)

	i := 0
	for i < len(line) {
		ch := line[i]
		if st.inLongString {
			if ch == '\\' {
				i += 2
				continue
			}
			if ch == st.quote && strings.HasPrefix(line[i:], strings.Repeat(string(st.quote), 3)) {
				st.inLongString = false
				i += 3
				continue
			}
			i++
			continue
		}
		if inString {
			if ch == '\\' {
				i += 2
				continue
			}
			if ch == stringChar {
				inString = false
			}
			i++
			continue
		}
		if inIRI {
			if ch == '>' {
				inIRI = false
			}
			i++
			continue
		}
		switch ch {
		case '"', '\'':
			if strings.HasPrefix(line[i:], strings.Repeat(string(ch), 3)) {
				st.inLongString = true
				st.quote = ch
				i += 3
				continue
			}
			inString = true
			stringChar = ch
		case '<':
			inIRI = true
		case '#':
			return line[:i]
		}
		i++
	}
	return line
}

// isStatementComplete reports whether a Turtle statement ends with a
// top-level '.' (outside strings, IRIs, brackets and collections).
func isStatementComplete(stmt string) bool {
	inString := false
	longString := false
	stringChar := byte(0)
	inIRI := false
	bracketDepth := 0
	parenDepth := 0

	for i := 0; i < len(stmt); i++ {
		ch := stmt[i]
		if inString {
			if ch == '\\' {
				i++
				continue
			}
			if ch == stringChar {
				if longString {
					if i+2 < len(stmt) && stmt[i+1] == stringChar && stmt[i+2] == stringChar {
						inString = false
						longString = false
						i += 2
					}
				} else {
					inString = false
				}
			}
			continue
		}
		if inIRI {
			if ch == '>' {
				inIRI = false
			}
			continue
		}
		switch ch {
		case '<':
			inIRI = true
		case '"', '\'':
			inString = true
			stringChar = ch
			if i+2 < len(stmt) && stmt[i+1] == ch && stmt[i+2] == ch {
				longString = true
				i += 2
			}
		case '[':
			bracketDepth++
		case ']':
			bracketDepth--
		case '(':
			parenDepth++
		case ')':
			parenDepth--
		}
	}
	if inString || inIRI || bracketDepth > 0 || parenDepth > 0 {
		return false
	}
	return strings.HasSuffix(strings.TrimSpace(stmt), ".")
}

// quoteLiteral renders a lexical form in double quotes using only the
// escapes the N-Triples grammar defines: ECHAR for the named controls,
// quote and backslash, and \uXXXX for bytes that are not valid UTF-8.
// The output always re-parses; valid UTF-8 round-trips byte-exactly.
func quoteLiteral(s string) string {
	var builder strings.Builder
	builder.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&builder, "\\u%04X", s[i])
			i++
			continue
		}
		switch r {
		case '"':
			builder.WriteString(`\"`)
		case '\\':
			builder.WriteString(`\\`)
		case '\n':
			builder.WriteString(`\n`)
		case '\r':
			builder.WriteString(`\r`)
		case '\t':
			builder.WriteString(`\t`)
		case '\b':
			builder.WriteString(`\b`)
		case '\f':
			builder.WriteString(`\f`)
		default:
			builder.WriteString(s[i : i+size])
		}
		i += size
	}
	builder.WriteByte('"')
	return builder.String()
}

func parseHexDigit(hex byte) (int, bool) {
	switch {
	case hex >= '0' && hex <= '9':
		return int(hex - '0'), true
	case hex >= 'a' && hex <= 'f':
		return int(hex-'a') + 10, true
	case hex >= 'A' && hex <= 'F':
		return int(hex-'A') + 10, true
	default:
		return 0, false
	}
}

func decodeUChar(hexStr string) rune {
	var codePoint rune
	for i := 0; i < len(hexStr); i++ {
		digit, ok := parseHexDigit(hexStr[i])
		if !ok {
			return -1
		}
		codePoint = codePoint*16 + rune(digit)
	}
	return codePoint
}

func isValidCodePoint(codePoint rune) bool {
	if codePoint > 0x10FFFF {
		return false
	}
	if codePoint >= surrogateHighStart && codePoint <= surrogateLowEnd {
		return false
	}
	return true
}

// unescapeString decodes RDF string literal escapes: simple escapes,
// \uXXXX (including surrogate pairs) and \UXXXXXXXX.
func unescapeString(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var builder strings.Builder
	pos := 0
	for pos < len(s) {
		ch := s[pos]
		if ch != '\\' {
			builder.WriteByte(ch)
			pos++
			continue
		}
		if pos+1 >= len(s) {
			return "", fmt.Errorf("unterminated escape")
		}
		switch next := s[pos+1]; next {
		case 'n':
			builder.WriteByte('\n')
			pos += 2
		case 't':
			builder.WriteByte('\t')
			pos += 2
		case 'r':
			builder.WriteByte('\r')
			pos += 2
		case 'b':
			builder.WriteByte('\b')
			pos += 2
		case 'f':
			builder.WriteByte('\f')
			pos += 2
		case '"', '\'', '\\':
			builder.WriteByte(next)
			pos += 2
		case 'u':
			advance, err := unescapeShortUnicode(&builder, s, pos)
			if err != nil {
				return "", err
			}
			pos += advance
		case 'U':
			advance, err := unescapeLongUnicode(&builder, s, pos)
			if err != nil {
				return "", err
			}
			pos += advance
		default:
			return "", fmt.Errorf("invalid escape sequence \\%c", next)
		}
	}
	return builder.String(), nil
}

func unescapeShortUnicode(builder *strings.Builder, s string, pos int) (int, error) {
	if pos+6 > len(s) {
		return 0, fmt.Errorf("invalid \\u escape")
	}
	codePoint := decodeUChar(s[pos+2 : pos+6])
	if codePoint < 0 {
		return 0, fmt.Errorf("invalid \\u escape")
	}
	if codePoint >= surrogateHighStart && codePoint <= surrogateHighEnd {
		if pos+12 > len(s) || s[pos+6] != '\\' || s[pos+7] != 'u' {
			return 0, fmt.Errorf("unpaired surrogate in \\u escape")
		}
		low := decodeUChar(s[pos+8 : pos+12])
		if low < surrogateLowStart || low > surrogateLowEnd {
			return 0, fmt.Errorf("unpaired surrogate in \\u escape")
		}
		combined := surrogateBase + ((codePoint - surrogateHighStart) << 10) + (low - surrogateLowStart)
		builder.WriteRune(combined)
		return 12, nil
	}
	if !isValidCodePoint(codePoint) {
		return 0, fmt.Errorf("invalid \\u escape")
	}
	builder.WriteRune(codePoint)
	return 6, nil
}

func unescapeLongUnicode(builder *strings.Builder, s string, pos int) (int, error) {
	if pos+10 > len(s) {
		return 0, fmt.Errorf("invalid \\U escape")
	}
	codePoint := decodeUChar(s[pos+2 : pos+10])
	if codePoint < 0 || !isValidCodePoint(codePoint) {
		return 0, fmt.Errorf("invalid \\U escape")
	}
	builder.WriteRune(codePoint)
	return 10, nil
}
