// Package document renders decoded messages into a generic ordered tree of
// objects, arrays, strings and numbers ready for JSON serialization.
package document

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/anirudhraja/rawpb/infer"
)

// Object is a JSON object whose keys keep insertion order. Nested messages
// are *Object values, repeated fields []interface{}.
type Object = orderedmap.OrderedMap[string, interface{}]

// Options controls rendering.
type Options struct {
	Bytes    BytesEncoding
	Integers IntegerFormat
}

// Build renders msg. Field numbers become decimal string keys; a field seen
// once renders as a bare value and a repeated one as an array in stream order.
func Build(msg *infer.Message, opts Options) *Object {
	b := builder{opts: opts}
	return b.object(msg)
}

type builder struct {
	opts Options
}

func (b builder) object(msg *infer.Message) *Object {
	obj := orderedmap.New[string, interface{}]()
	for _, field := range msg.Fields() {
		key := strconv.Itoa(int(field.Number))
		if !field.Repeated() {
			obj.Set(key, b.value(field.Values[0]))
			continue
		}
		items := make([]interface{}, len(field.Values))
		for i, v := range field.Values {
			items[i] = b.value(v)
		}
		obj.Set(key, items)
	}
	return obj
}

func (b builder) value(v infer.Value) interface{} {
	switch v.Kind {
	case infer.KindInteger:
		switch b.opts.Integers {
		case IntegersSigned:
			return v.Int64()
		case IntegersZigZag:
			return v.ZigZag()
		}
		return v.Uint64()
	case infer.KindFixed32:
		if b.opts.Integers != IntegersUnsigned {
			return int32(v.Int64())
		}
		return uint32(v.Uint64())
	case infer.KindFixed64:
		if b.opts.Integers != IntegersUnsigned {
			return v.Int64()
		}
		return v.Uint64()
	case infer.KindFloat32:
		f := v.Float32()
		if s, ok := nonFinite(float64(f)); ok {
			return s
		}
		return f
	case infer.KindFloat64:
		f := v.Float64()
		if s, ok := nonFinite(f); ok {
			return s
		}
		return f
	case infer.KindString:
		return v.Text()
	case infer.KindBytes:
		return b.opts.Bytes.Render(v.Bytes())
	case infer.KindMessage:
		return b.object(v.Message())
	default:
		return nil
	}
}

// nonFinite spells NaN and infinities the way protojson does, since JSON
// numbers cannot hold them.
func nonFinite(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return "NaN", true
	case math.IsInf(f, 1):
		return "Infinity", true
	case math.IsInf(f, -1):
		return "-Infinity", true
	default:
		return "", false
	}
}

// MarshalJSON serializes obj. A non-empty indent produces multi-line output.
func MarshalJSON(obj *Object, indent string) ([]byte, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	if indent == "" {
		return data, nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
