package infer

import (
	"errors"
	"unicode/utf8"

	"github.com/anirudhraja/rawpb/wire"
)

var (
	errReservedInText = errors.New("reserved field number in a valid UTF-8 payload")
	errNotMessage     = errors.New("payload is not a sequence of fields")
)

// guess classifies a length-delimited payload. Candidates are tried in a fixed
// order and the first that accepts wins:
//
//  1. a nested message consuming the whole non-empty payload
//  2. a UTF-8 string, including the empty payload
//  3. raw bytes
//
// A failed nested attempt falls through, except when a message-shaped binary
// payload hit the recursion limit, which fails the whole parse. Valid UTF-8
// past the limit is a string.
func (p *parser) guess(payload []byte, offset, depth int) (Value, error) {
	text := utf8.Valid(payload)

	if len(payload) > 0 {
		nested, err := p.nestedMessage(payload, offset, depth+1, text)
		if err == nil {
			return MessageValue(nested, offset), nil
		}
		if wire.KindOf(err) == wire.KindRecursionLimitExceeded {
			return Value{}, err
		}
		p.log.Trace().
			Int("offset", offset).
			Int("length", len(payload)).
			Int("depth", depth+1).
			Err(err).
			Msg("payload is not a nested message")
	}

	if text {
		return StringValue(string(payload), offset), nil
	}
	return BytesValue(payload, offset), nil
}

func (p *parser) nestedMessage(payload []byte, offset, depth int, text bool) (*Message, error) {
	if depth > p.maxDepth {
		if text || !shallowMessage(payload) {
			return nil, errNotMessage
		}
		return nil, wire.NewRecursionError(offset, p.maxDepth)
	}

	msg, err := p.parseMessage(payload, offset, depth)
	if err != nil {
		return nil, err
	}
	// Text that happens to parse with reserved field numbers is text.
	if text && msg.HasReserved() {
		return nil, errReservedInText
	}
	return msg, nil
}

// shallowMessage reports whether payload is a sequence of well-formed fields
// at its own level, without looking inside length-delimited values.
func shallowMessage(payload []byte) bool {
	d := wire.NewDecoder(payload)
	for !d.EOF() {
		_, wireType, err := d.NextTag()
		if err != nil {
			return false
		}
		switch wireType {
		case wire.WireVarint:
			_, err = d.DecodeVarint()
		case wire.WireFixed32:
			_, err = d.DecodeFixed32()
		case wire.WireFixed64:
			_, err = d.DecodeFixed64()
		case wire.WireBytes:
			_, _, err = d.DecodeRawBytes()
		}
		if err != nil {
			return false
		}
	}
	return true
}

// Classify reports which representation a length-delimited payload would
// receive, as if it appeared as a field of a top-level message.
func Classify(payload []byte, opts Options) (Kind, error) {
	p := newParser(opts)
	v, err := p.guess(payload, 0, 0)
	if err != nil {
		return 0, err
	}
	return v.Kind, nil
}
