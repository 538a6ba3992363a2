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

// Package chainkeys implements the base58/RIPEMD-160 text encoding used
// by EOSIO-family public keys, private keys and signatures, across both
// the legacy "EOS..." format and the modern "PUB_K1_...", "SIG_K1_..."
// prefixed formats. The binary wire layout (a one byte curve tag followed
// by the key/signature material) is read and written by the abi package's
// primitive codec table; this package supplies the CurveType tag values.
package chainkeys

import (
	"context"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/mr-tron/base58"
	"github.com/sysio-chain/abicodec/internal/abimsgs"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // matches the ecosystem's existing checksum choice
)

// CurveType identifies which elliptic curve a key/signature was produced
// with. It is serialized as a single leading byte on the wire.
type CurveType uint8

const (
	CurveK1 CurveType = 0
	CurveR1 CurveType = 1
	CurveWA CurveType = 2
)

func (c CurveType) suffix() string {
	switch c {
	case CurveK1:
		return "K1"
	case CurveR1:
		return "R1"
	case CurveWA:
		return "WA"
	default:
		return "??"
	}
}

// publicKeyDataLength returns the expected length, in bytes, of the fixed-size
// portion of a public key for the given curve (WA keys have a variable
// length user-presence blob that follows this fixed portion).
func publicKeyDataLength(c CurveType) int {
	if c == CurveWA {
		return 34
	}
	return 33
}

func signatureDataLength(c CurveType) int {
	// All three curve types share a 65-byte fixed signature payload; WA
	// signatures additionally carry two length-prefixed blobs that the
	// abi package's wire codec reads separately.
	return 65
}

// ripemdChecksum computes the checksum suffix used by both the legacy and
// modern base58 text forms: RIPEMD160(payload [|| suffix-bytes]).
func ripemdChecksum(payload []byte, suffixBytes ...byte) []byte {
	h := ripemd160.New()
	h.Write(payload)
	for _, sb := range suffixBytes {
		h.Write([]byte{sb})
	}
	sum := h.Sum(nil)
	return sum[:4]
}

// EncodeLegacyPublicKey renders a K1 public key using the legacy "EOS..."
// base58 form: base58(data || ripemd160(data)[:4]).
func EncodeLegacyPublicKey(data [33]byte) string {
	checksum := ripemdChecksum(data[:])
	buf := make([]byte, 0, 37)
	buf = append(buf, data[:]...)
	buf = append(buf, checksum...)
	return "EOS" + base58.Encode(buf)
}

// DecodeLegacyPublicKey parses the legacy "EOS..." base58 public key form.
func DecodeLegacyPublicKey(ctx context.Context, s string) (data [33]byte, err error) {
	if len(s) < 3 || s[0:3] != "EOS" {
		return data, i18n.NewError(ctx, abimsgs.MsgInvalidKeyType, "public_key", s)
	}
	return decodeChecksummed(ctx, "public_key", s[3:], nil)
}

// prefixedName builds the modern "PUB_K1_...", "SIG_R1_..." etc prefix.
func prefixedName(kind string, c CurveType) string {
	return kind + "_" + c.suffix() + "_"
}

// EncodeModern renders the modern prefixed base58 form:
// "<KIND>_<CURVE>_" || base58(data || ripemd160(data || curve-suffix-bytes)[:4])
func EncodeModern(kind string, c CurveType, data []byte) string {
	checksum := ripemdChecksum(data, []byte(c.suffix())...)
	buf := make([]byte, 0, len(data)+4)
	buf = append(buf, data...)
	buf = append(buf, checksum...)
	return prefixedName(kind, c) + base58.Encode(buf)
}

// DecodeModern parses the modern "<KIND>_<CURVE>_..." prefixed base58 form.
func DecodeModern(ctx context.Context, kind, s string, expectLen int) (curve CurveType, data []byte, err error) {
	for _, c := range []CurveType{CurveK1, CurveR1, CurveWA} {
		prefix := prefixedName(kind, c)
		if len(s) > len(prefix) && s[:len(prefix)] == prefix {
			b, err := decodeChecksummedVar(ctx, kind, s[len(prefix):], []byte(c.suffix()), expectLen)
			return c, b, err
		}
	}
	return 0, nil, i18n.NewError(ctx, abimsgs.MsgInvalidKeyType, kind, s)
}

func decodeChecksummed(ctx context.Context, desc, b58 string, suffix []byte) (out [33]byte, err error) {
	b, err := decodeChecksummedVar(ctx, desc, b58, suffix, 33)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

func decodeChecksummedVar(ctx context.Context, desc, b58 string, suffix []byte, expectLen int) ([]byte, error) {
	raw, err := base58.Decode(b58)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, abimsgs.MsgInvalidKeyChecksum, desc)
	}
	if len(raw) < 4 {
		return nil, i18n.NewError(ctx, abimsgs.MsgInvalidKeyChecksum, desc)
	}
	data := raw[:len(raw)-4]
	checksum := raw[len(raw)-4:]
	h := ripemd160.New()
	h.Write(data)
	h.Write(suffix)
	want := h.Sum(nil)[:4]
	if !bytesEqual(want, checksum) {
		return nil, i18n.NewError(ctx, abimsgs.MsgInvalidKeyChecksum, desc)
	}
	if expectLen > 0 && len(data) != expectLen {
		return nil, i18n.NewError(ctx, abimsgs.MsgInvalidKeyLength, desc, expectLen, len(data))
	}
	return data, nil
}

// ValidateK1PublicKey checks that a decoded K1 public key's 33-byte SEC1
// compressed encoding is an actual point on the secp256k1 curve, catching
// a checksum-valid but mathematically bogus key.
func ValidateK1PublicKey(ctx context.Context, data [33]byte) error {
	if _, err := btcec.ParsePubKey(data[:]); err != nil {
		return i18n.NewError(ctx, abimsgs.MsgInvalidKeyChecksum, "public_key")
	}
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
