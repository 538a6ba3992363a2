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

package chaintypes

import (
	"context"
	"strconv"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/sysio-chain/abicodec/internal/abimsgs"
)

// SymbolCode is the 7-character (max) ticker of a symbol, packed into the
// low 56 bits of a uint64 (one byte per character, NUL padded, low byte
// first).
type SymbolCode uint64

// Symbol combines a SymbolCode with a precision (0-18), packed with the
// precision in the low byte and the code in the remaining 7 bytes.
type Symbol uint64

func ParseSymbolCode(ctx context.Context, s string) (SymbolCode, error) {
	if !validSymbolCodeText(s) {
		return 0, i18n.NewError(ctx, abimsgs.MsgInvalidSymbolCode, "symbol_code", s)
	}
	return SymbolCode(packSymbolCode(s)), nil
}

func validSymbolCodeText(s string) bool {
	if len(s) == 0 || len(s) > 7 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

func packSymbolCode(s string) uint64 {
	var v uint64
	for i := len(s) - 1; i >= 0; i-- {
		v = (v << 8) | uint64(s[i])
	}
	return v
}

func (sc SymbolCode) String() string {
	v := uint64(sc)
	buf := make([]byte, 0, 7)
	for v != 0 {
		buf = append(buf, byte(v&0xFF))
		v >>= 8
	}
	return string(buf)
}

func ParseSymbol(ctx context.Context, s string) (Symbol, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, i18n.NewError(ctx, abimsgs.MsgInvalidSymbol, "symbol", s)
	}
	precision, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil || precision > 18 {
		return 0, i18n.NewError(ctx, abimsgs.MsgInvalidPrecision, "symbol", parts[0])
	}
	sc, err := ParseSymbolCode(ctx, parts[1])
	if err != nil {
		return 0, err
	}
	return Symbol(uint64(sc)<<8 | precision), nil
}

func (sym Symbol) Precision() uint8 {
	return uint8(uint64(sym) & 0xFF)
}

func (sym Symbol) Code() SymbolCode {
	return SymbolCode(uint64(sym) >> 8)
}

func (sym Symbol) String() string {
	return strconv.Itoa(int(sym.Precision())) + "," + sym.Code().String()
}

// Asset pairs a signed 64-bit amount with a Symbol. Its textual form is
// "<decimal amount, scaled by the symbol's precision> <CODE>".
type Asset struct {
	Amount int64
	Sym    Symbol
}

func ParseAsset(ctx context.Context, s string) (Asset, error) {
	s = strings.TrimSpace(s)
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Asset{}, i18n.NewError(ctx, abimsgs.MsgInvalidAsset, "asset", s)
	}
	amountStr, codeStr := parts[0], parts[1]

	neg := false
	if strings.HasPrefix(amountStr, "-") {
		neg = true
		amountStr = amountStr[1:]
	}
	dot := strings.IndexByte(amountStr, '.')
	var digits string
	var precision int
	if dot < 0 {
		digits = amountStr
		precision = 0
	} else {
		digits = amountStr[:dot] + amountStr[dot+1:]
		precision = len(amountStr) - dot - 1
	}
	if digits == "" || !allDigits(digits) {
		return Asset{}, i18n.NewError(ctx, abimsgs.MsgInvalidAsset, "asset", s)
	}
	amountVal, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Asset{}, i18n.NewError(ctx, abimsgs.MsgInvalidAsset, "asset", s)
	}
	if neg {
		amountVal = -amountVal
	}
	if !validSymbolCodeText(codeStr) {
		return Asset{}, i18n.NewError(ctx, abimsgs.MsgInvalidSymbolCode, "asset", codeStr)
	}
	sc := packSymbolCode(codeStr)
	return Asset{
		Amount: amountVal,
		Sym:    Symbol(sc<<8 | uint64(precision)),
	}, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (a Asset) String() string {
	precision := int(a.Sym.Precision())
	neg := a.Amount < 0
	amount := a.Amount
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	for len(digits) <= precision {
		digits = "0" + digits
	}
	var out string
	if precision == 0 {
		out = digits
	} else {
		split := len(digits) - precision
		out = digits[:split] + "." + digits[split:]
	}
	if neg {
		out = "-" + out
	}
	return out + " " + a.Sym.Code().String()
}
