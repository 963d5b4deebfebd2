// Package rawpb converts protobuf wire format bytes into a JSON-like document
// without the .proto schema. Field numbers become keys, and length-delimited
// values are guessed to be nested messages, strings or bytes.
package rawpb

import (
	"github.com/rs/zerolog"

	"github.com/anirudhraja/rawpb/document"
	"github.com/anirudhraja/rawpb/infer"
)

// ===== SCHEMA-LESS API =====

// Parser decodes buffers with a fixed configuration. It holds no mutable
// state and may be shared between goroutines.
type Parser struct {
	config Config
	logger zerolog.Logger
}

// Option customizes a Parser.
type Option func(*Parser)

// WithLogger makes the parser trace its guessing decisions to l.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// New creates a parser for config
func New(config Config, opts ...Option) *Parser {
	p := &Parser{
		config: config,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Config returns the parser configuration.
func (p *Parser) Config() Config { return p.config }

// Decode returns the typed message tree for data.
func (p *Parser) Decode(data []byte) (*infer.Message, error) {
	return infer.Parse(data, infer.Options{
		MaxDepth: p.config.MaxDepth,
		Fixed:    p.config.Fixed,
		Logger:   &p.logger,
	})
}

// Parse decodes data into a document. An empty buffer yields an empty object.
// On error no document is returned; errors match the wire.Err* sentinels.
func (p *Parser) Parse(data []byte) (*document.Object, error) {
	msg, err := p.Decode(data)
	if err != nil {
		return nil, err
	}

	return document.Build(msg, document.Options{
		Bytes:    p.config.BytesEncoding,
		Integers: p.config.Integers,
	}), nil
}

// ParseJSON decodes data and serializes the document.
func (p *Parser) ParseJSON(data []byte, indent string) ([]byte, error) {
	doc, err := p.Parse(data)
	if err != nil {
		return nil, err
	}
	return document.MarshalJSON(doc, indent)
}

// Parse decodes data with the default configuration
func Parse(data []byte) (*document.Object, error) {
	return New(DefaultConfig()).Parse(data)
}
