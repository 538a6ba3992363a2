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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sysio-chain/abicodec/pkg/chainkeys"
)

const primitiveABI = `{
	"version": "eosio::abi/1.1",
	"structs": [
		{
			"name": "bag",
			"base": "",
			"fields": [
				{"name": "a_int64", "type": "int64"},
				{"name": "a_uint128", "type": "uint128"},
				{"name": "a_varuint32", "type": "varuint32"},
				{"name": "a_float64", "type": "float64"},
				{"name": "a_bytes", "type": "bytes"},
				{"name": "a_checksum256", "type": "checksum256"},
				{"name": "a_bool", "type": "bool"}
			]
		}
	]
}`

func TestPrimitiveCatalogueRoundTrip(t *testing.T) {
	c, err := BuildContract([]byte(primitiveABI))
	assert.NoError(t, err)

	in := `{` +
		`"a_int64":"-9223372036854775808",` +
		`"a_uint128":"340282366920938463463374607431768211455",` +
		`"a_varuint32":300,` +
		`"a_float64":1.5,` +
		`"a_bytes":"deadbeef",` +
		`"a_checksum256":"` + strings.Repeat("ab", 32) + `",` +
		`"a_bool":true` +
		`}`

	bin, err := c.JSONToBin("bag", []byte(in))
	assert.NoError(t, err)

	out, err := c.BinToJSON("bag", bin)
	assert.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestInt64EmitsAsString(t *testing.T) {
	c, err := BuildContract([]byte(`{"version":"eosio::abi/1.1","structs":[{"name":"s","base":"","fields":[{"name":"v","type":"int64"}]}]}`))
	assert.NoError(t, err)

	bin, err := c.JSONToBin("s", []byte(`{"v":"7"}`))
	assert.NoError(t, err)
	out, err := c.BinToJSON("s", bin)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"v":"7"}`, string(out))
}

func TestUint32EmitsAsNumber(t *testing.T) {
	c, err := BuildContract([]byte(`{"version":"eosio::abi/1.1","structs":[{"name":"s","base":"","fields":[{"name":"v","type":"uint32"}]}]}`))
	assert.NoError(t, err)

	bin, err := c.JSONToBin("s", []byte(`{"v":7}`))
	assert.NoError(t, err)
	out, err := c.BinToJSON("s", bin)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"v":7}`, string(out))
}

func TestInvalidIntegerRejected(t *testing.T) {
	c, err := BuildContract([]byte(`{"version":"eosio::abi/1.1","structs":[{"name":"s","base":"","fields":[{"name":"v","type":"uint32"}]}]}`))
	assert.NoError(t, err)

	_, err = c.JSONToBin("s", []byte(`{"v":"not a number"}`))
	assert.Error(t, err)
}

func TestChecksum256WrongLengthRejected(t *testing.T) {
	c, err := BuildContract([]byte(`{"version":"eosio::abi/1.1","structs":[{"name":"s","base":"","fields":[{"name":"v","type":"checksum256"}]}]}`))
	assert.NoError(t, err)

	_, err = c.JSONToBin("s", []byte(`{"v":"`+strings.Repeat("ab", 10)+`"}`))
	assert.Error(t, err)
}

const keyFieldABI = `{
	"version": "eosio::abi/1.1",
	"structs": [
		{
			"name": "auth",
			"base": "",
			"fields": [
				{"name": "key", "type": "public_key"},
				{"name": "sig", "type": "signature"}
			]
		}
	]
}`

// secp256k1 generator point G, compressed SEC1 form - a real curve point,
// since the K1 public key path validates curve membership.
const testGeneratorPointHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

func TestPublicKeyLegacyK1RoundTrip(t *testing.T) {
	c, err := BuildContract([]byte(keyFieldABI))
	assert.NoError(t, err)

	data, err := hex.DecodeString(testGeneratorPointHex)
	assert.NoError(t, err)
	var fixed [33]byte
	copy(fixed[:], data)
	legacy := chainkeys.EncodeLegacyPublicKey(fixed)
	sig := chainkeys.EncodeModern("SIG", chainkeys.CurveK1, make([]byte, 65))

	in := `{"key":"` + legacy + `","sig":"` + sig + `"}`
	bin, err := c.JSONToBin("auth", []byte(in))
	assert.NoError(t, err)

	out, err := c.BinToJSON("auth", bin)
	assert.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestPublicKeyModernR1RoundTrip(t *testing.T) {
	c, err := BuildContract([]byte(keyFieldABI))
	assert.NoError(t, err)

	keyData := make([]byte, 33)
	for i := range keyData {
		keyData[i] = byte(i + 1)
	}
	key := chainkeys.EncodeModern("PUB", chainkeys.CurveR1, keyData)
	sig := chainkeys.EncodeModern("SIG", chainkeys.CurveR1, make([]byte, 65))

	in := `{"key":"` + key + `","sig":"` + sig + `"}`
	bin, err := c.JSONToBin("auth", []byte(in))
	assert.NoError(t, err)

	out, err := c.BinToJSON("auth", bin)
	assert.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

// This is precisely the case the review found broken: a WA public key and
// signature, each carrying non-empty trailing blobs, must survive a
// JSON -> binary -> JSON round trip byte-for-byte.
func TestPublicKeyAndSignatureWARoundTripWithTrailingBlobs(t *testing.T) {
	c, err := BuildContract([]byte(keyFieldABI))
	assert.NoError(t, err)

	keyFixed := make([]byte, 34)
	for i := range keyFixed {
		keyFixed[i] = byte(0x80 + i)
	}
	keyBlob := []byte{0x03, 'a', 'b', 'c'}
	keyData := append(append([]byte{}, keyFixed...), keyBlob...)
	key := chainkeys.EncodeModern("PUB", chainkeys.CurveWA, keyData)

	sigFixed := make([]byte, 65)
	for i := range sigFixed {
		sigFixed[i] = byte(i + 1)
	}
	sigBlob1 := []byte{0x02, 'h', 'i'}
	sigBlob2 := []byte{0x05, '{', '}', '"', 'x', '"'}
	sigData := append(append(append([]byte{}, sigFixed...), sigBlob1...), sigBlob2...)
	sig := chainkeys.EncodeModern("SIG", chainkeys.CurveWA, sigData)

	in := `{"key":"` + key + `","sig":"` + sig + `"}`
	bin, err := c.JSONToBin("auth", []byte(in))
	assert.NoError(t, err)

	out, err := c.BinToJSON("auth", bin)
	assert.NoError(t, err)
	assert.JSONEq(t, in, string(out))

	// The signature field right after the WA key's variable-length trailing
	// blob would catch any leftover length-prefix miscount corrupting the
	// rest of the struct; also check the value-tree entry point agrees.
	bin2, err := c.JSONValueToBin("auth", []byte(in))
	assert.NoError(t, err)
	assert.Equal(t, bin, bin2)
}

func TestPrivateKeyRoundTrip(t *testing.T) {
	c, err := BuildContract([]byte(`{"version":"eosio::abi/1.1","structs":[{"name":"s","base":"","fields":[{"name":"v","type":"private_key"}]}]}`))
	assert.NoError(t, err)

	text := chainkeys.EncodeModern("PVT", chainkeys.CurveK1, make([]byte, 32))
	in := `{"v":"` + text + `"}`
	bin, err := c.JSONToBin("s", []byte(in))
	assert.NoError(t, err)
	out, err := c.BinToJSON("s", bin)
	assert.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestNameSymbolAssetRoundTrip(t *testing.T) {
	c, err := BuildContract([]byte(`{
		"version": "eosio::abi/1.1",
		"structs": [
			{"name": "s", "base": "", "fields": [
				{"name": "acct", "type": "name"},
				{"name": "sym", "type": "symbol"},
				{"name": "amt", "type": "asset"}
			]}
		]
	}`))
	assert.NoError(t, err)

	in := `{"acct":"eosio.token","sym":"4,EOS","amt":"1.2500 EOS"}`
	bin, err := c.JSONToBin("s", []byte(in))
	assert.NoError(t, err)
	out, err := c.BinToJSON("s", bin)
	assert.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestTimePointRoundTrip(t *testing.T) {
	c, err := BuildContract([]byte(`{"version":"eosio::abi/1.1","structs":[{"name":"s","base":"","fields":[{"name":"v","type":"time_point"}]}]}`))
	assert.NoError(t, err)

	in := `{"v":"2022-01-01T00:00:00.500000"}`
	bin, err := c.JSONToBin("s", []byte(in))
	assert.NoError(t, err)
	out, err := c.BinToJSON("s", bin)
	assert.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}
