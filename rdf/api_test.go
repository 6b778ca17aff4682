package rdf

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
		ok    bool
	}{
		{"turtle", FormatTurtle, true},
		{"TTL", FormatTurtle, true},
		{" ntriples ", FormatNTriples, true},
		{"nt", FormatNTriples, true},
		{"nq", FormatNQuads, true},
		{"json-ld", FormatJSONLD, true},
		{"rdfxml", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseFormat(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseFormat(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestUnsupportedFormats(t *testing.T) {
	factory := NewDataFactory()
	if _, err := NewTripleDecoder(strings.NewReader(""), FormatNQuads, factory); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("nquads is not a triple format: %v", err)
	}
	if _, err := NewQuadDecoder(strings.NewReader(""), FormatTurtle, factory); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("turtle is not a quad format: %v", err)
	}
	if _, err := NewQuadEncoder(nil, FormatJSONLD); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("jsonld quad encoding is unsupported: %v", err)
	}
	if _, err := NewTripleEncoder(nil, Format("bogus")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("bogus format: %v", err)
	}
}

func TestParseTriplesHandler(t *testing.T) {
	factory := NewDataFactory()
	input := `@prefix ex: <http://example.org/> .
ex:s ex:p ex:o1, ex:o2 .
`
	var count int
	err := ParseTriples(context.Background(), strings.NewReader(input), FormatTurtle, factory, TripleHandlerFunc(func(Triple) error {
		count++
		return nil
	}))
	if err != nil {
		t.Fatalf("ParseTriples: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 triples, got %d", count)
	}
}

func TestParseTriplesHandlerError(t *testing.T) {
	factory := NewDataFactory()
	input := `<http://example.org/s> <http://example.org/p> <http://example.org/o> .` + "\n"
	wantErr := errors.New("stop")
	err := ParseTriples(nil, strings.NewReader(input), FormatNTriples, factory, TripleHandlerFunc(func(Triple) error {
		return wantErr
	}))
	if !errors.Is(err, wantErr) {
		t.Fatalf("handler error must propagate, got %v", err)
	}
}

func TestParseQuadsCancellation(t *testing.T) {
	factory := NewDataFactory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	input := `<http://example.org/s> <http://example.org/p> <http://example.org/o> .` + "\n"
	err := ParseQuads(ctx, strings.NewReader(input), FormatNQuads, factory, QuadHandlerFunc(func(Quad) error {
		t.Fatalf("handler must not run after cancellation")
		return nil
	}))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDecoderErrIsSticky(t *testing.T) {
	factory := NewDataFactory()
	dec, err := NewTripleDecoder(strings.NewReader("garbage here\n"), FormatNTriples, factory)
	if err != nil {
		t.Fatalf("NewTripleDecoder: %v", err)
	}
	_, first := dec.Next()
	if first == nil {
		t.Fatalf("expected parse error")
	}
	_, second := dec.Next()
	if second != first {
		t.Fatalf("subsequent Next must repeat the stored error")
	}
	if dec.Err() != first {
		t.Fatalf("Err must return the stored error")
	}
}
