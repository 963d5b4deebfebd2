package infer

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/anirudhraja/rawpb/wire"
)

// Field holds every value seen for one field number at one message level,
// in stream order.
type Field struct {
	Number wire.FieldNumber
	Values []Value
}

// Repeated reports whether the field number occurred more than once. A field
// seen once may still belong to a repeated field; the wire format cannot tell.
func (f *Field) Repeated() bool {
	return len(f.Values) > 1
}

// Message is one decoded message level: an ordered mapping from field number
// to its values. Keys follow the first occurrence of each field number.
type Message struct {
	fields   *orderedmap.OrderedMap[wire.FieldNumber, *Field]
	reserved bool
}

func NewMessage() *Message {
	return &Message{fields: orderedmap.New[wire.FieldNumber, *Field]()}
}

// Add aggregates a decoded value: the first value of a field number creates
// its entry, later ones append to it.
func (m *Message) Add(fieldNumber wire.FieldNumber, v Value) {
	if f, ok := m.fields.Get(fieldNumber); ok {
		f.Values = append(f.Values, v)
		return
	}
	m.fields.Set(fieldNumber, &Field{Number: fieldNumber, Values: []Value{v}})
	if fieldNumber.IsReserved() {
		m.reserved = true
	}
}

// Len returns the number of distinct field numbers.
func (m *Message) Len() int {
	return m.fields.Len()
}

// Get returns the field for a field number.
func (m *Message) Get(fieldNumber wire.FieldNumber) (*Field, bool) {
	return m.fields.Get(fieldNumber)
}

// Fields returns the fields in first-occurrence order.
func (m *Message) Fields() []*Field {
	out := make([]*Field, 0, m.fields.Len())
	for pair := m.fields.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// HasReserved reports whether any field number lies in the reserved range.
func (m *Message) HasReserved() bool {
	return m.reserved
}
