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

// Package chaintypes implements the textual/binary encoding rules for the
// blockchain-specific primitive types of an EOSIO-family ABI: names,
// symbols, assets and the various timestamp formats. Each type is a pure
// value with a String()/Parse pair plus a 64-bit (or smaller) packed
// binary representation - the abi package drives these from the type
// graph, but the rules themselves have no dependency on it.
package chaintypes

import (
	"context"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/sysio-chain/abicodec/internal/abimsgs"
)

// nameCharset is the 32-symbol alphabet used to pack a `name` of up to 13
// characters into 64 bits. Position 12 (if present) only uses the low 4 bits, so it
// is restricted to the first 16 characters of the alphabet.
const nameCharset = ".12345abcdefghijklmnopqrstuvwxyz"

// Name is a packed 64-bit EOSIO-family account/action/table name.
type Name uint64

// ParseName packs the textual form of a name (up to 13 characters drawn
// from nameCharset) into its 64-bit wire representation.
func ParseName(ctx context.Context, s string) (Name, error) {
	if len(s) > 13 {
		return 0, i18n.NewError(ctx, abimsgs.MsgNameTooLong, "name", s)
	}
	for i := 0; i < len(s); i++ {
		sym := charToSymbol(s[i])
		if sym < 0 || (i == 12 && sym > 0x0F) {
			return 0, i18n.NewError(ctx, abimsgs.MsgInvalidName, "name", s, string(s[i]))
		}
	}
	return Name(packName(s)), nil
}

func charToSymbol(c byte) int {
	for i := 0; i < len(nameCharset); i++ {
		if nameCharset[i] == c {
			return i
		}
	}
	return -1
}

// packName does the actual bit-packing, following the canonical EOSIO
// layout: value = sum(symbol(s[i]) << shift(i)) for i in 0..len(s)-1,
// where shift(i) = 64 - 5*(i+1) for i < 12, and shift(12) = 0 (the last
// character only occupies the bottom 4 bits, so it is not shifted).
func packName(s string) uint64 {
	var value uint64
	n := len(s)
	if n > 13 {
		n = 13
	}
	for i := 0; i < n; i++ {
		c := charToSymbol(s[i])
		if c < 0 {
			continue
		}
		if i < 12 {
			value |= uint64(c) << uint(64-5*(i+1))
		} else {
			value |= uint64(c & 0x0F)
		}
	}
	return value
}

// String unpacks the 64-bit value back into its textual name form,
// trimming trailing '.' padding characters.
func (n Name) String() string {
	value := uint64(n)
	var out [13]byte
	tmp := value
	for i := 0; i < 12; i++ {
		idx := (tmp >> uint(64-5*(i+1))) & 0x1F
		out[i] = nameCharset[idx]
	}
	out[12] = nameCharset[tmp&0x0F]
	s := string(out[:])
	// trim trailing '.' padding
	end := len(s)
	for end > 0 && s[end-1] == '.' {
		end--
	}
	return s[:end]
}
