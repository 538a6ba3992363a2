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

package chainkeys

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

// secp256k1 generator point G, compressed SEC1 form - a real point on the
// curve, needed because ValidateK1PublicKey actually checks curve
// membership rather than just checksum validity.
const generatorPointHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	assert.NoError(t, err)
	return b
}

func TestEncodeDecodeLegacyPublicKeyRoundTrip(t *testing.T) {
	ctx := context.Background()
	var data [33]byte
	copy(data[:], mustHex(t, generatorPointHex))

	text := EncodeLegacyPublicKey(data)
	assert.True(t, len(text) > 3 && text[:3] == "EOS")

	out, err := DecodeLegacyPublicKey(ctx, text)
	assert.NoError(t, err)
	assert.Equal(t, data, out)
	assert.NoError(t, ValidateK1PublicKey(ctx, out))
}

func TestDecodeLegacyPublicKeyRejectsWrongPrefix(t *testing.T) {
	_, err := DecodeLegacyPublicKey(context.Background(), "PUB_K1_xyz")
	assert.Error(t, err)
}

func TestDecodeLegacyPublicKeyRejectsBadChecksum(t *testing.T) {
	var data [33]byte
	copy(data[:], mustHex(t, generatorPointHex))
	text := EncodeLegacyPublicKey(data)
	// Flip the last character of the base58 payload to corrupt the checksum.
	corrupted := text[:len(text)-1] + flipBase58Char(text[len(text)-1])
	_, err := DecodeLegacyPublicKey(context.Background(), corrupted)
	assert.Error(t, err)
}

func flipBase58Char(c byte) string {
	if c == '1' {
		return "2"
	}
	return "1"
}

func TestValidateK1PublicKeyRejectsNonCurvePoint(t *testing.T) {
	var data [33]byte
	data[0] = 0x02 // a compressed-point prefix with an all-zero x coordinate is not on the curve
	assert.Error(t, ValidateK1PublicKey(context.Background(), data))
}

func TestEncodeDecodeModernPublicKeyK1RoundTrip(t *testing.T) {
	ctx := context.Background()
	data := mustHex(t, generatorPointHex)

	text := EncodeModern("PUB", CurveK1, data)
	assert.Equal(t, "PUB_K1_", text[:7])

	curve, out, err := DecodeModern(ctx, "PUB", text, 0)
	assert.NoError(t, err)
	assert.Equal(t, CurveK1, curve)
	assert.Equal(t, data, out)
}

func TestEncodeDecodeModernPublicKeyR1RoundTrip(t *testing.T) {
	ctx := context.Background()
	data := make([]byte, 33)
	for i := range data {
		data[i] = byte(i + 1)
	}

	text := EncodeModern("PUB", CurveR1, data)
	assert.Equal(t, "PUB_R1_", text[:7])

	curve, out, err := DecodeModern(ctx, "PUB", text, 0)
	assert.NoError(t, err)
	assert.Equal(t, CurveR1, curve)
	assert.Equal(t, data, out)
}

// WA keys carry a variable-length user-presence blob after their fixed
// portion; the abi package's codec is what imposes structure (a varuint32
// length prefix) on this opaque payload, but chainkeys itself must still
// round-trip it byte-for-byte regardless of what's inside it.
func TestEncodeDecodeModernPublicKeyWARoundTripWithTrailingBlob(t *testing.T) {
	ctx := context.Background()
	fixed := make([]byte, 34)
	for i := range fixed {
		fixed[i] = byte(0x80 + i)
	}
	blob := []byte{0x03, 'a', 'b', 'c'} // varuint32(3) || "abc", simulating a non-empty user-presence blob
	data := append(append([]byte{}, fixed...), blob...)

	text := EncodeModern("PUB", CurveWA, data)
	assert.Equal(t, "PUB_WA_", text[:7])

	curve, out, err := DecodeModern(ctx, "PUB", text, 0)
	assert.NoError(t, err)
	assert.Equal(t, CurveWA, curve)
	assert.Equal(t, data, out)
}

func TestEncodeDecodeModernSignatureK1RoundTrip(t *testing.T) {
	ctx := context.Background()
	data := make([]byte, 65)
	for i := range data {
		data[i] = byte(i)
	}

	text := EncodeModern("SIG", CurveK1, data)
	curve, out, err := DecodeModern(ctx, "SIG", text, 0)
	assert.NoError(t, err)
	assert.Equal(t, CurveK1, curve)
	assert.Equal(t, data, out)
}

// WA signatures carry two length-prefixed blobs (authenticator-data,
// client-data-json) after the fixed 65 bytes; exercise a non-empty second
// blob specifically, since that is exactly what the abi package's
// encode/decode split logic must get right.
func TestEncodeDecodeModernSignatureWARoundTripWithTrailingBlobs(t *testing.T) {
	ctx := context.Background()
	fixed := make([]byte, 65)
	for i := range fixed {
		fixed[i] = byte(i + 1)
	}
	blob1 := []byte{0x02, 'h', 'i'}                // varuint32(2) || "hi"
	blob2 := []byte{0x05, '{', '}', '"', 'x', '"'} // varuint32(5) || `{}"x"`
	data := append(append(append([]byte{}, fixed...), blob1...), blob2...)

	text := EncodeModern("SIG", CurveWA, data)
	curve, out, err := DecodeModern(ctx, "SIG", text, 0)
	assert.NoError(t, err)
	assert.Equal(t, CurveWA, curve)
	assert.Equal(t, data, out)
}

func TestDecodeModernUnknownPrefix(t *testing.T) {
	_, _, err := DecodeModern(context.Background(), "PUB", "NOPE_K1_xyz", 0)
	assert.Error(t, err)
}

func TestDecodeModernRejectsWrongLength(t *testing.T) {
	ctx := context.Background()
	text := EncodeModern("PVT", CurveK1, make([]byte, 32))
	_, _, err := DecodeModern(ctx, "PVT", text, 31)
	assert.Error(t, err)
}

func TestDecodeModernRejectsBadChecksum(t *testing.T) {
	ctx := context.Background()
	text := EncodeModern("PUB", CurveK1, mustHex(t, generatorPointHex))
	corrupted := text[:len(text)-1] + flipBase58Char(text[len(text)-1])
	_, _, err := DecodeModern(ctx, "PUB", corrupted, 0)
	assert.Error(t, err)
}
