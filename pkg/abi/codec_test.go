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
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

const transferABI = `{
	"version": "eosio::abi/1.1",
	"structs": [
		{
			"name": "transfer",
			"base": "",
			"fields": [
				{"name": "from", "type": "name"},
				{"name": "to", "type": "name"},
				{"name": "quantity", "type": "asset"},
				{"name": "memo", "type": "string"},
				{"name": "extra", "type": "uint32$"}
			]
		},
		{
			"name": "wrapper",
			"base": "",
			"fields": [
				{"name": "amounts", "type": "uint32[]"},
				{"name": "note", "type": "string?"}
			]
		}
	],
	"variants": [
		{"name": "either", "types": ["uint32", "string"]}
	]
}`

func TestTransferRoundTrip(t *testing.T) {
	c, err := BuildContract([]byte(transferABI))
	assert.NoError(t, err)

	in := `{"from":"alice","to":"bob","quantity":"1.0000 SYS","memo":"hi"}`
	bin, err := c.JSONToBin("transfer", []byte(in))
	assert.NoError(t, err)

	out, err := c.BinToJSON("transfer", bin)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"from":"alice","to":"bob","quantity":"1.0000 SYS","memo":"hi"}`, string(out))
}

func TestTransferWithExtensionField(t *testing.T) {
	c, err := BuildContract([]byte(transferABI))
	assert.NoError(t, err)

	in := `{"from":"alice","to":"bob","quantity":"1.0000 SYS","memo":"hi","extra":42}`
	bin, err := c.JSONToBin("transfer", []byte(in))
	assert.NoError(t, err)

	out, err := c.BinToJSON("transfer", bin)
	assert.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestArrayAndOptionalRoundTrip(t *testing.T) {
	c, err := BuildContract([]byte(transferABI))
	assert.NoError(t, err)

	in := `{"amounts":[1,2,3],"note":"hello"}`
	bin, err := c.JSONToBin("wrapper", []byte(in))
	assert.NoError(t, err)

	out, err := c.BinToJSON("wrapper", bin)
	assert.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestOptionalNullRoundTrip(t *testing.T) {
	c, err := BuildContract([]byte(transferABI))
	assert.NoError(t, err)

	in := `{"amounts":[],"note":null}`
	bin, err := c.JSONToBin("wrapper", []byte(in))
	assert.NoError(t, err)
	assert.Equal(t, "0000", hex.EncodeToString(bin))

	out, err := c.BinToJSON("wrapper", bin)
	assert.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestVariantRoundTrip(t *testing.T) {
	c, err := BuildContract([]byte(transferABI))
	assert.NoError(t, err)

	in := `["string","hello"]`
	bin, err := c.JSONToBin("either", []byte(in))
	assert.NoError(t, err)

	out, err := c.BinToJSON("either", bin)
	assert.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestVariantUnknownCase(t *testing.T) {
	c, err := BuildContract([]byte(transferABI))
	assert.NoError(t, err)

	_, err = c.JSONToBin("either", []byte(`["bool",true]`))
	assert.Error(t, err)
}

func TestMissingRequiredField(t *testing.T) {
	c, err := BuildContract([]byte(transferABI))
	assert.NoError(t, err)

	_, err = c.JSONToBin("transfer", []byte(`{"from":"alice","to":"bob"}`))
	assert.Error(t, err)
}

func TestFieldOutOfOrderRejected(t *testing.T) {
	c, err := BuildContract([]byte(transferABI))
	assert.NoError(t, err)

	_, err = c.JSONToBin("transfer", []byte(`{"to":"bob","from":"alice","quantity":"1.0000 SYS","memo":"hi"}`))
	assert.Error(t, err)
}

func TestValueTreeReplayMatchesEventStream(t *testing.T) {
	c, err := BuildContract([]byte(transferABI))
	assert.NoError(t, err)

	in := `{"from":"alice","to":"bob","quantity":"1.0000 SYS","memo":"hi"}`
	fromEvents, err := c.JSONToBin("transfer", []byte(in))
	assert.NoError(t, err)

	fromTree, err := c.JSONValueToBin("transfer", []byte(in))
	assert.NoError(t, err)

	assert.Equal(t, fromEvents, fromTree)
}

func TestUnknownTypeName(t *testing.T) {
	c, err := BuildContract([]byte(transferABI))
	assert.NoError(t, err)

	_, err = c.JSONToBin("nosuchtype", []byte(`{}`))
	assert.Error(t, err)
}

const multiExtensionABI = `{
	"version": "eosio::abi/1.1",
	"structs": [
		{
			"name": "versioned",
			"base": "",
			"fields": [
				{"name": "id", "type": "uint32"},
				{"name": "extra_a", "type": "uint32$"},
				{"name": "extra_b", "type": "uint32$"}
			]
		}
	]
}`

// Both extra_a and extra_b are trailing binary-extension fields. The
// value-tree path can skip both at once, since it checks every remaining
// field against the input directly; the event-stream (SAX) path only ever
// learns "no more fields" once, at the real EndObject, so it can only skip
// the single last field and must reject a gap further back. decodeStruct
// mirrors the value-tree path's ability to skip the whole run.
func TestMultipleTrailingExtensionFieldsSkippable(t *testing.T) {
	c, err := BuildContract([]byte(multiExtensionABI))
	assert.NoError(t, err)

	in := `{"id":7}`
	bin, err := c.JSONValueToBin("versioned", []byte(in))
	assert.NoError(t, err)
	assert.Equal(t, "07000000", hex.EncodeToString(bin))

	_, err = c.JSONToBin("versioned", []byte(in))
	assert.Error(t, err)

	out, err := c.BinToJSON("versioned", bin)
	assert.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestMultipleTrailingExtensionFieldsOnlyFirstSupplied(t *testing.T) {
	c, err := BuildContract([]byte(multiExtensionABI))
	assert.NoError(t, err)

	in := `{"id":7,"extra_a":9}`
	bin, err := c.JSONToBin("versioned", []byte(in))
	assert.NoError(t, err)

	out, err := c.BinToJSON("versioned", bin)
	assert.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestArrayCountTooBigRejected(t *testing.T) {
	c, err := BuildContract([]byte(transferABI))
	assert.NoError(t, err)

	// A varuint32 count (0xFFFFFFFF) claiming far more elements than the
	// single trailing byte left in the buffer could possibly contain.
	bin, err := hex.DecodeString("ffffffff0f00")
	assert.NoError(t, err)

	_, err = c.BinToJSON("wrapper", bin)
	assert.Error(t, err)
}
