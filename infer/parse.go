package infer

import (
	"github.com/rs/zerolog"

	"github.com/anirudhraja/rawpb/wire"
)

type parser struct {
	maxDepth int
	fixed    FixedPolicy
	log      zerolog.Logger
}

func newParser(opts Options) *parser {
	return &parser{
		maxDepth: opts.maxDepth(),
		fixed:    opts.Fixed,
		log:      opts.logger(),
	}
}

// Parse decodes data as one message. The whole buffer must consist of valid
// fields; any error fails the call and no partial message is returned.
// Parse keeps no state between calls and is safe for concurrent use.
func Parse(data []byte, opts Options) (*Message, error) {
	p := newParser(opts)
	return p.parseMessage(data, 0, 0)
}

// parseMessage decodes one message level. base is the absolute offset of
// data and depth its nesting level, 0 for the top level.
func (p *parser) parseMessage(data []byte, base, depth int) (*Message, error) {
	d := wire.NewDecoderAt(data, base)
	msg := NewMessage()

	for !d.EOF() {
		fieldNumber, wireType, err := d.NextTag()
		if err != nil {
			return nil, err
		}

		value, err := p.decodeValue(d, wireType, depth)
		if err != nil {
			return nil, wire.WrapWithField(err, fieldNumber)
		}

		if prev, ok := msg.Get(fieldNumber); ok && prev.Values[0].WireType() != wireType {
			p.log.Debug().
				Int("offset", value.Offset).
				Uint32("field", uint32(fieldNumber)).
				Stringer("first", prev.Values[0].WireType()).
				Stringer("now", wireType).
				Msg("field number repeats with a different wire type")
		}
		msg.Add(fieldNumber, value)
	}

	return msg, nil
}
