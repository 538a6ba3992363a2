// Copyright © 2022 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package abi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/sysio-chain/abicodec/internal/abimsgs"
)

// eventKind tags a single JSON event. Numbers are never a distinct kind -
// they arrive as evString, exactly like any other scalar, so the
// primitive codecs are the only place that interprets their text.
type eventKind int

const (
	evNull eventKind = iota
	evBool
	evString
	evStartObject
	evKey
	evEndObject
	evStartArray
	evEndArray
)

// event is one item of the JSON event stream the engines are driven by.
type event struct {
	kind eventKind
	b    bool
	s    string
}

// decodeEvents turns a JSON document into a flat event stream, using
// json.Decoder's token mode so that numbers survive as their original
// text (json.Number) rather than being rounded through float64.
func decodeEvents(ctx context.Context, data []byte) ([]event, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	type frame struct {
		isObject  bool
		expectKey bool
	}
	var stack []frame
	var events []event

	afterValue := func() {
		if n := len(stack); n > 0 && stack[n-1].isObject {
			stack[n-1].expectKey = true
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, i18n.WrapError(ctx, err, abimsgs.MsgMalformedJSON, err.Error())
		}
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				events = append(events, event{kind: evStartObject})
				stack = append(stack, frame{isObject: true, expectKey: true})
			case '}':
				events = append(events, event{kind: evEndObject})
				stack = stack[:len(stack)-1]
				afterValue()
			case '[':
				events = append(events, event{kind: evStartArray})
				stack = append(stack, frame{})
			case ']':
				events = append(events, event{kind: evEndArray})
				stack = stack[:len(stack)-1]
				afterValue()
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].isObject && stack[n-1].expectKey {
				events = append(events, event{kind: evKey, s: t})
				stack[n-1].expectKey = false
			} else {
				events = append(events, event{kind: evString, s: t})
				afterValue()
			}
		case json.Number:
			events = append(events, event{kind: evString, s: t.String()})
			afterValue()
		case bool:
			events = append(events, event{kind: evBool, b: t})
			afterValue()
		case nil:
			events = append(events, event{kind: evNull})
			afterValue()
		}
	}
	return events, nil
}

// eventCursor is the explicit read position the engines advance through
// the flat event stream - the "stack" of §4.2 is the engine's own
// recursive call stack, bounded by maxStackFrames at each descent.
type eventCursor struct {
	events []event
	pos    int
}

func (c *eventCursor) peek() (event, bool) {
	if c.pos >= len(c.events) {
		return event{}, false
	}
	return c.events[c.pos], true
}

func (c *eventCursor) next() (event, bool) {
	ev, ok := c.peek()
	if ok {
		c.pos++
	}
	return ev, ok
}

// value is a node of the JSON value tree: exactly one of its fields is
// meaningful, selected by kind. JSONValueToBinCtx builds one with
// parseValue and encodes from it with encodeValueNode; the type is
// unexported, so callers outside this package cannot supply a tree.
type value struct {
	kind eventKind
	b    bool
	s    string
	obj  []kv
	arr  []value
}

type kv struct {
	key string
	val value
}

// parseValue parses a JSON document directly into a value tree.
func parseValue(ctx context.Context, data []byte) (value, error) {
	events, err := decodeEvents(ctx, data)
	if err != nil {
		return value{}, err
	}
	cur := &eventCursor{events: events}
	v, err := buildValue(ctx, cur, 0)
	if err != nil {
		return value{}, err
	}
	return v, nil
}

// describeKind renders an eventKind for error messages. It is shared by
// events and value-tree nodes, since both carry the same tag type.
func describeKind(k eventKind) string {
	switch k {
	case evNull:
		return "null"
	case evBool:
		return "bool"
	case evString:
		return "string"
	case evStartObject:
		return "start_object"
	case evKey:
		return "key"
	case evEndObject:
		return "end_object"
	case evStartArray:
		return "start_array"
	case evEndArray:
		return "end_array"
	default:
		return "unknown"
	}
}

func buildValue(ctx context.Context, cur *eventCursor, depth int) (value, error) {
	if depth >= maxStackFrames {
		return value{}, i18n.NewError(ctx, abimsgs.MsgStackOverflow, maxStackFrames)
	}
	ev, ok := cur.next()
	if !ok {
		return value{}, i18n.NewError(ctx, abimsgs.MsgUnexpectedEvent, "end of input")
	}
	switch ev.kind {
	case evNull:
		return value{kind: evNull}, nil
	case evBool:
		return value{kind: evBool, b: ev.b}, nil
	case evString:
		return value{kind: evString, s: ev.s}, nil
	case evStartArray:
		var arr []value
		for {
			next, ok := cur.peek()
			if !ok {
				return value{}, i18n.NewError(ctx, abimsgs.MsgUnexpectedEvent, "end of input")
			}
			if next.kind == evEndArray {
				cur.next()
				break
			}
			elem, err := buildValue(ctx, cur, depth+1)
			if err != nil {
				return value{}, err
			}
			arr = append(arr, elem)
		}
		return value{kind: evStartArray, arr: arr}, nil
	case evStartObject:
		var obj []kv
		for {
			next, ok := cur.next()
			if !ok {
				return value{}, i18n.NewError(ctx, abimsgs.MsgUnexpectedEvent, "end of input")
			}
			if next.kind == evEndObject {
				break
			}
			if next.kind != evKey {
				return value{}, i18n.NewError(ctx, abimsgs.MsgUnexpectedEvent, describeKind(next.kind))
			}
			fieldVal, err := buildValue(ctx, cur, depth+1)
			if err != nil {
				return value{}, err
			}
			obj = append(obj, kv{key: next.s, val: fieldVal})
		}
		return value{kind: evStartObject, obj: obj}, nil
	default:
		return value{}, i18n.NewError(ctx, abimsgs.MsgUnexpectedEvent, describeKind(ev.kind))
	}
}

// jsonWriter accumulates JSON text for the bin2json engine. It writes
// directly rather than building an intermediate value tree, matching
// the engine's single streaming pass over the byte cursor.
type jsonWriter struct {
	buf        bytes.Buffer
	needsComma []bool
}

func newJSONWriter() *jsonWriter {
	return &jsonWriter{needsComma: []bool{false}}
}

func (w *jsonWriter) top() int { return len(w.needsComma) - 1 }

func (w *jsonWriter) comma() {
	t := w.top()
	if w.needsComma[t] {
		w.buf.WriteByte(',')
	}
	w.needsComma[t] = true
}

func (w *jsonWriter) push() { w.needsComma = append(w.needsComma, false) }
func (w *jsonWriter) pop()  { w.needsComma = w.needsComma[:len(w.needsComma)-1] }

func (w *jsonWriter) startObject() {
	w.comma()
	w.buf.WriteByte('{')
	w.push()
}

func (w *jsonWriter) key(name string) {
	t := w.top()
	if w.needsComma[t] {
		w.buf.WriteByte(',')
	}
	// The value written right after the key must not get a leading comma;
	// its own comma() call sets the flag again for the next key.
	w.needsComma[t] = false
	b, _ := json.Marshal(name)
	w.buf.Write(b)
	w.buf.WriteByte(':')
}

func (w *jsonWriter) endObject() {
	w.pop()
	w.buf.WriteByte('}')
}

func (w *jsonWriter) startArray() {
	w.comma()
	w.buf.WriteByte('[')
	w.push()
}

func (w *jsonWriter) endArray() {
	w.pop()
	w.buf.WriteByte(']')
}

func (w *jsonWriter) writeNull() {
	w.comma()
	w.buf.WriteString("null")
}

func (w *jsonWriter) writeBool(b bool) {
	w.comma()
	if b {
		w.buf.WriteString("true")
	} else {
		w.buf.WriteString("false")
	}
}

// writeRawNumber writes a JSON number without quoting it.
func (w *jsonWriter) writeRawNumber(s string) {
	w.comma()
	w.buf.WriteString(s)
}

// writeString writes a quoted, escaped JSON string.
func (w *jsonWriter) writeString(s string) {
	w.comma()
	b, _ := json.Marshal(s)
	w.buf.Write(b)
}

func (w *jsonWriter) bytes() []byte { return w.buf.Bytes() }
