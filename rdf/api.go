package rdf

import (
	"context"
	"io"
)

// TripleDecoder streams RDF triples from an input. Every term a decoder
// produces is built through the DataFactory it was given.
type TripleDecoder interface {
	Next() (Triple, error)
	Err() error
	Close() error
}

// QuadDecoder streams RDF quads from an input.
type QuadDecoder interface {
	Next() (Quad, error)
	Err() error
	Close() error
}

// TripleEncoder streams RDF statements to an output. It accepts any
// TripleLike, so both Triple and Quad values can be written (a Quad's
// graph name is dropped by triple-only formats).
type TripleEncoder interface {
	Write(TripleLike) error
	Flush() error
	Close() error
}

// QuadEncoder streams RDF quads to an output.
type QuadEncoder interface {
	Write(QuadLike) error
	Flush() error
	Close() error
}

// TripleHandler processes triples in push mode.
type TripleHandler interface {
	Handle(Triple) error
}

// TripleHandlerFunc adapts a function to a TripleHandler.
type TripleHandlerFunc func(Triple) error

// Handle calls the underlying function.
func (h TripleHandlerFunc) Handle(t Triple) error { return h(t) }

// QuadHandler processes quads in push mode.
type QuadHandler interface {
	Handle(Quad) error
}

// QuadHandlerFunc adapts a function to a QuadHandler.
type QuadHandlerFunc func(Quad) error

// Handle calls the underlying function.
func (h QuadHandlerFunc) Handle(q Quad) error { return h(q) }

// NewTripleDecoder creates a decoder for a triple format. All terms are
// built through factory, so generated blank node identifiers draw from
// the factory's shared counter.
func NewTripleDecoder(r io.Reader, format Format, factory DataFactory) (TripleDecoder, error) {
	return NewTripleDecoderWithOptions(r, format, factory, DefaultDecodeOptions())
}

// NewTripleDecoderWithOptions creates a triple decoder with explicit
// parser limits.
func NewTripleDecoderWithOptions(r io.Reader, format Format, factory DataFactory, opts DecodeOptions) (TripleDecoder, error) {
	opts = normalizeDecodeOptions(opts)
	switch format {
	case FormatTurtle:
		return newTurtleDecoder(r, factory, opts), nil
	case FormatNTriples:
		return newNTriplesDecoder(r, factory, opts), nil
	case FormatJSONLD:
		return newJSONLDTripleDecoder(r, factory, JSONLDOptions{Context: opts.Context}), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// NewQuadDecoder creates a decoder for a quad format.
func NewQuadDecoder(r io.Reader, format Format, factory DataFactory) (QuadDecoder, error) {
	return NewQuadDecoderWithOptions(r, format, factory, DefaultDecodeOptions())
}

// NewQuadDecoderWithOptions creates a quad decoder with explicit parser
// limits.
func NewQuadDecoderWithOptions(r io.Reader, format Format, factory DataFactory, opts DecodeOptions) (QuadDecoder, error) {
	opts = normalizeDecodeOptions(opts)
	switch format {
	case FormatNQuads:
		return newNQuadsDecoder(r, factory, opts), nil
	case FormatJSONLD:
		return newJSONLDQuadDecoder(r, factory, JSONLDOptions{Context: opts.Context}), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// NewTripleEncoder creates an encoder for a triple format. The Turtle
// encoder emits the N-Triples subset, which is valid Turtle.
func NewTripleEncoder(w io.Writer, format Format) (TripleEncoder, error) {
	switch format {
	case FormatTurtle, FormatNTriples:
		return newNTriplesEncoder(w), nil
	case FormatJSONLD:
		return newJSONLDEncoder(w), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// NewQuadEncoder creates an encoder for a quad format.
func NewQuadEncoder(w io.Writer, format Format) (QuadEncoder, error) {
	switch format {
	case FormatNQuads:
		return newNQuadsEncoder(w), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ParseTriples parses a triple format and streams results to the handler.
// If ctx is nil, context.Background() is used.
func ParseTriples(ctx context.Context, r io.Reader, format Format, factory DataFactory, handler TripleHandler) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := DefaultDecodeOptions()
	opts.Context = ctx
	dec, err := NewTripleDecoderWithOptions(r, format, factory, opts)
	if err != nil {
		return err
	}
	defer dec.Close()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		triple, err := dec.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := handler.Handle(triple); err != nil {
			return err
		}
	}
}

// ParseQuads parses a quad format and streams results to the handler.
// If ctx is nil, context.Background() is used.
func ParseQuads(ctx context.Context, r io.Reader, format Format, factory DataFactory, handler QuadHandler) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := DefaultDecodeOptions()
	opts.Context = ctx
	dec, err := NewQuadDecoderWithOptions(r, format, factory, opts)
	if err != nil {
		return err
	}
	defer dec.Close()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		quad, err := dec.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := handler.Handle(quad); err != nil {
			return err
		}
	}
}
