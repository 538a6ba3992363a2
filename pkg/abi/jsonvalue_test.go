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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEventsPreservesNumberText(t *testing.T) {
	events, err := decodeEvents(context.Background(), []byte(`{"a":18446744073709551615}`))
	assert.NoError(t, err)
	assert.Equal(t, []event{
		{kind: evStartObject},
		{kind: evKey, s: "a"},
		{kind: evString, s: "18446744073709551615"},
		{kind: evEndObject},
	}, events)
}

func TestDecodeEventsMalformedJSON(t *testing.T) {
	_, err := decodeEvents(context.Background(), []byte(`{"a":`))
	assert.Error(t, err)
}

func TestBuildValueTree(t *testing.T) {
	v, err := parseValue(context.Background(), []byte(`{"x":[1,2],"y":null}`))
	assert.NoError(t, err)
	assert.Equal(t, evStartObject, v.kind)
	assert.Len(t, v.obj, 2)
	assert.Equal(t, "x", v.obj[0].key)
	assert.Equal(t, evStartArray, v.obj[0].val.kind)
	assert.Len(t, v.obj[0].val.arr, 2)
	assert.Equal(t, evNull, v.obj[1].val.kind)
}

func TestJSONWriterNesting(t *testing.T) {
	w := newJSONWriter()
	w.startObject()
	w.key("a")
	w.writeRawNumber("1")
	w.key("b")
	w.startArray()
	w.writeString("x")
	w.writeBool(true)
	w.endArray()
	w.endObject()
	assert.JSONEq(t, `{"a":1,"b":["x",true]}`, string(w.bytes()))
}
