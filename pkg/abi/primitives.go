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
	"encoding/hex"
	"math"
	"math/big"
	"strconv"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/sysio-chain/abicodec/internal/abimsgs"
	"github.com/sysio-chain/abicodec/pkg/chainkeys"
	"github.com/sysio-chain/abicodec/pkg/chaintypes"
)

// primitiveCodec is the uniform triple every leaf type in the catalogue
// implements: consume one JSON event and emit bytes, consume bytes and
// emit one JSON value, or consume one value-tree node and emit bytes.
// Dispatch to these is nominal - the engines look a codec up by the
// type node's name, never by inspecting the JSON shape.
type primitiveCodec struct {
	name string

	// jsonToBin consumes exactly the events that make up one value of
	// this type (a single scalar event, for every primitive) and
	// appends its binary encoding to enc.
	jsonToBin func(ctx context.Context, enc *encoder, ev event, path string) error

	// binToJSON reads this type's fixed or self-delimiting binary
	// encoding from dec and writes the equivalent JSON value to w.
	binToJSON func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error

	// valueToBin is the value-tree dual of jsonToBin, used by the
	// replay path so a parsed document need not be re-walked as events.
	valueToBin func(ctx context.Context, enc *encoder, v value, path string) error
}

func registerPrimitives(c *Contract) {
	for _, p := range primitiveTable() {
		c.types[p.name] = &typeNode{name: p.name, kind: KindPrimitive, prim: p}
	}
}

// scalarEventText and scalarValueText extract the textual payload of a
// scalar JSON event or value-tree node, coercing bool to "0"/"1" the way the arithmetic
// primitives are specified to.
func scalarEventText(ctx context.Context, ev event, path string) (string, error) {
	switch ev.kind {
	case evString:
		return ev.s, nil
	case evBool:
		if ev.b {
			return "1", nil
		}
		return "0", nil
	default:
		return "", wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgExpectedScalar, describeKind(ev.kind)))
	}
}

func scalarValueText(ctx context.Context, v value, path string) (string, error) {
	switch v.kind {
	case evString:
		return v.s, nil
	case evBool:
		if v.b {
			return "1", nil
		}
		return "0", nil
	default:
		return "", wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgExpectedScalar, describeKind(v.kind)))
	}
}

func primitiveTable() []*primitiveCodec {
	var table []*primitiveCodec
	table = append(table, intCodecs()...)
	table = append(table, bigIntCodecs()...)
	table = append(table, varintCodecs()...)
	table = append(table, floatCodecs()...)
	table = append(table, boolCodec())
	table = append(table, stringCodec())
	table = append(table, bytesAndChecksumCodecs()...)
	table = append(table, chainPrimitiveCodecs()...)
	table = append(table, keyCodecs()...)
	return table
}

type intSpec struct {
	name   string
	bits   int
	signed bool
}

func intCodecs() []*primitiveCodec {
	specs := []intSpec{
		{"int8", 8, true}, {"uint8", 8, false},
		{"int16", 16, true}, {"uint16", 16, false},
		{"int32", 32, true}, {"uint32", 32, false},
		{"int64", 64, true}, {"uint64", 64, false},
	}
	out := make([]*primitiveCodec, 0, len(specs))
	for _, s := range specs {
		s := s
		out = append(out, &primitiveCodec{
			name: s.name,
			jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
				text, err := scalarEventText(ctx, ev, path)
				if err != nil {
					return err
				}
				return encodeInt(ctx, enc, s, text, path)
			},
			valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
				text, err := scalarValueText(ctx, v, path)
				if err != nil {
					return err
				}
				return encodeInt(ctx, enc, s, text, path)
			},
			binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
				return decodeInt(ctx, dec, w, s, path)
			},
		})
	}
	return out
}

func encodeInt(ctx context.Context, enc *encoder, s intSpec, text, path string) error {
	if s.signed {
		v, err := strconv.ParseInt(text, 10, s.bits)
		if err != nil {
			return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgInvalidInteger, s.name, text))
		}
		writeSignedInt(enc, s.bits, v)
		return nil
	}
	v, err := strconv.ParseUint(text, 10, s.bits)
	if err != nil {
		return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgInvalidInteger, s.name, text))
	}
	writeUnsignedInt(enc, s.bits, v)
	return nil
}

func writeSignedInt(enc *encoder, bits int, v int64) {
	switch bits {
	case 8:
		enc.writeByte(byte(v))
	case 16:
		enc.writeUint16(uint16(v))
	case 32:
		enc.writeUint32(uint32(v))
	case 64:
		enc.writeUint64(uint64(v))
	}
}

func writeUnsignedInt(enc *encoder, bits int, v uint64) {
	switch bits {
	case 8:
		enc.writeByte(byte(v))
	case 16:
		enc.writeUint16(uint16(v))
	case 32:
		enc.writeUint32(uint32(v))
	case 64:
		enc.writeUint64(v)
	}
}

// decodeInt follows §4.3: values up to 32 bits emit as JSON numbers,
// 64-bit values emit as JSON strings to survive a round trip through
// hosts whose JSON numbers are IEEE-754 doubles.
func decodeInt(ctx context.Context, dec *decoder, w *jsonWriter, s intSpec, path string) error {
	switch s.bits {
	case 8:
		b, err := dec.readByte(ctx)
		if err != nil {
			return wrapPathErr(path, err)
		}
		if s.signed {
			w.writeRawNumber(strconv.FormatInt(int64(int8(b)), 10))
		} else {
			w.writeRawNumber(strconv.FormatUint(uint64(b), 10))
		}
	case 16:
		v, err := dec.readUint16(ctx)
		if err != nil {
			return wrapPathErr(path, err)
		}
		if s.signed {
			w.writeRawNumber(strconv.FormatInt(int64(int16(v)), 10))
		} else {
			w.writeRawNumber(strconv.FormatUint(uint64(v), 10))
		}
	case 32:
		v, err := dec.readUint32(ctx)
		if err != nil {
			return wrapPathErr(path, err)
		}
		if s.signed {
			w.writeRawNumber(strconv.FormatInt(int64(int32(v)), 10))
		} else {
			w.writeRawNumber(strconv.FormatUint(uint64(v), 10))
		}
	case 64:
		v, err := dec.readUint64(ctx)
		if err != nil {
			return wrapPathErr(path, err)
		}
		if s.signed {
			w.writeString(strconv.FormatInt(int64(v), 10))
		} else {
			w.writeString(strconv.FormatUint(v, 10))
		}
	}
	return nil
}

// bigIntCodecs implements int128/uint128 on top of math/big, the same
// big-integer text codec the chain's Ethereum-family primitives use -
// decimal text in, 16 raw little-endian bytes on the wire.
func bigIntCodecs() []*primitiveCodec {
	mk := func(name string, signed bool) *primitiveCodec {
		return &primitiveCodec{
			name: name,
			jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
				text, err := scalarEventText(ctx, ev, path)
				if err != nil {
					return err
				}
				return encodeBigInt(ctx, enc, name, text, signed, path)
			},
			valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
				text, err := scalarValueText(ctx, v, path)
				if err != nil {
					return err
				}
				return encodeBigInt(ctx, enc, name, text, signed, path)
			},
			binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
				return decodeBigInt(ctx, dec, w, signed, path)
			},
		}
	}
	return []*primitiveCodec{mk("int128", true), mk("uint128", false)}
}

func encodeBigInt(ctx context.Context, enc *encoder, name, text string, signed bool, path string) error {
	bi, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgInvalidInteger, name, text))
	}
	neg := bi.Sign() < 0
	if neg && !signed {
		return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgIntegerOverflow, name, text))
	}
	mag := new(big.Int).Abs(bi)
	b := mag.Bytes() // big-endian magnitude
	var le [16]byte
	for i, j := 0, len(b)-1; j >= 0 && i < 16; i, j = i+1, j-1 {
		le[i] = b[j]
	}
	if neg {
		// two's complement negate over the 16-byte field
		carry := uint16(1)
		for i := 0; i < 16; i++ {
			v := uint16(^le[i]) + carry
			le[i] = byte(v)
			carry = v >> 8
		}
	}
	enc.writeBytes(le[:])
	return nil
}

func decodeBigInt(ctx context.Context, dec *decoder, w *jsonWriter, signed bool, path string) error {
	raw, err := dec.readBytes(ctx, 16)
	if err != nil {
		return wrapPathErr(path, err)
	}
	neg := signed && raw[15]&0x80 != 0
	work := make([]byte, 16)
	copy(work, raw)
	if neg {
		carry := uint16(1)
		for i := 0; i < 16; i++ {
			v := uint16(^work[i]) + carry
			work[i] = byte(v)
			carry = v >> 8
		}
	}
	be := make([]byte, 16)
	for i := 0; i < 16; i++ {
		be[i] = work[15-i]
	}
	mag := new(big.Int).SetBytes(be)
	if neg {
		mag.Neg(mag)
	}
	w.writeString(mag.String())
	return nil
}

func varintCodecs() []*primitiveCodec {
	varuint32 := &primitiveCodec{
		name: "varuint32",
		jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
			text, err := scalarEventText(ctx, ev, path)
			if err != nil {
				return err
			}
			v, err := strconv.ParseUint(text, 10, 32)
			if err != nil {
				return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgInvalidInteger, "varuint32", text))
			}
			enc.writeVarUint32(uint32(v))
			return nil
		},
		valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
			text, err := scalarValueText(ctx, v, path)
			if err != nil {
				return err
			}
			vv, err := strconv.ParseUint(text, 10, 32)
			if err != nil {
				return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgInvalidInteger, "varuint32", text))
			}
			enc.writeVarUint32(uint32(vv))
			return nil
		},
		binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
			v, err := dec.readVarUint32(ctx)
			if err != nil {
				return wrapPathErr(path, err)
			}
			w.writeRawNumber(strconv.FormatUint(uint64(v), 10))
			return nil
		},
	}
	varint32 := &primitiveCodec{
		name: "varint32",
		jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
			text, err := scalarEventText(ctx, ev, path)
			if err != nil {
				return err
			}
			v, err := strconv.ParseInt(text, 10, 32)
			if err != nil {
				return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgInvalidInteger, "varint32", text))
			}
			enc.writeVarInt32(int32(v))
			return nil
		},
		valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
			text, err := scalarValueText(ctx, v, path)
			if err != nil {
				return err
			}
			vv, err := strconv.ParseInt(text, 10, 32)
			if err != nil {
				return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgInvalidInteger, "varint32", text))
			}
			enc.writeVarInt32(int32(vv))
			return nil
		},
		binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
			v, err := dec.readVarInt32(ctx)
			if err != nil {
				return wrapPathErr(path, err)
			}
			w.writeRawNumber(strconv.FormatInt(int64(v), 10))
			return nil
		},
	}
	return []*primitiveCodec{varuint32, varint32}
}

func floatCodecs() []*primitiveCodec {
	f32 := &primitiveCodec{
		name: "float32",
		jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
			text, err := scalarEventText(ctx, ev, path)
			if err != nil {
				return err
			}
			v, err := strconv.ParseFloat(text, 32)
			if err != nil {
				return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgInvalidFloat, "float32", text))
			}
			enc.writeUint32(math.Float32bits(float32(v)))
			return nil
		},
		valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
			text, err := scalarValueText(ctx, v, path)
			if err != nil {
				return err
			}
			f, err := strconv.ParseFloat(text, 32)
			if err != nil {
				return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgInvalidFloat, "float32", text))
			}
			enc.writeUint32(math.Float32bits(float32(f)))
			return nil
		},
		binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
			bits, err := dec.readUint32(ctx)
			if err != nil {
				return wrapPathErr(path, err)
			}
			w.writeRawNumber(strconv.FormatFloat(float64(math.Float32frombits(bits)), 'g', -1, 32))
			return nil
		},
	}
	f64 := &primitiveCodec{
		name: "float64",
		jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
			text, err := scalarEventText(ctx, ev, path)
			if err != nil {
				return err
			}
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgInvalidFloat, "float64", text))
			}
			enc.writeUint64(math.Float64bits(v))
			return nil
		},
		valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
			text, err := scalarValueText(ctx, v, path)
			if err != nil {
				return err
			}
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgInvalidFloat, "float64", text))
			}
			enc.writeUint64(math.Float64bits(f))
			return nil
		},
		binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
			bits, err := dec.readUint64(ctx)
			if err != nil {
				return wrapPathErr(path, err)
			}
			w.writeRawNumber(strconv.FormatFloat(math.Float64frombits(bits), 'g', -1, 64))
			return nil
		},
	}
	// float128 has no IEEE-754 representation in the host language; it
	// is carried as an opaque 16-byte blob, hex-encoded in JSON, the
	// same way the fixed checksum types are.
	f128 := &primitiveCodec{
		name: "float128",
		jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
			text, err := scalarEventText(ctx, ev, path)
			if err != nil {
				return err
			}
			return encodeFixedHex(ctx, enc, "float128", text, 16, path)
		},
		valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
			text, err := scalarValueText(ctx, v, path)
			if err != nil {
				return err
			}
			return encodeFixedHex(ctx, enc, "float128", text, 16, path)
		},
		binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
			return decodeFixedHex(ctx, dec, w, 16, path)
		},
	}
	return []*primitiveCodec{f32, f64, f128}
}

func boolCodec() *primitiveCodec {
	return &primitiveCodec{
		name: "bool",
		jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
			switch ev.kind {
			case evBool:
				if ev.b {
					enc.writeByte(1)
				} else {
					enc.writeByte(0)
				}
				return nil
			case evString:
				if ev.s == "1" || ev.s == "true" {
					enc.writeByte(1)
					return nil
				}
				if ev.s == "0" || ev.s == "false" {
					enc.writeByte(0)
					return nil
				}
			}
			return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgUnsupportedInput, "bool"))
		},
		valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
			switch v.kind {
			case evBool:
				if v.b {
					enc.writeByte(1)
				} else {
					enc.writeByte(0)
				}
				return nil
			case evString:
				if v.s == "1" || v.s == "true" {
					enc.writeByte(1)
					return nil
				}
				if v.s == "0" || v.s == "false" {
					enc.writeByte(0)
					return nil
				}
			}
			return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgUnsupportedInput, "bool"))
		},
		binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
			b, err := dec.readByte(ctx)
			if err != nil {
				return wrapPathErr(path, err)
			}
			w.writeBool(b != 0)
			return nil
		},
	}
}

func stringCodec() *primitiveCodec {
	return &primitiveCodec{
		name: "string",
		jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
			if ev.kind != evString {
				return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgUnsupportedInput, "string"))
			}
			b := []byte(ev.s)
			enc.writeVarUint32(uint32(len(b)))
			enc.writeBytes(b)
			return nil
		},
		valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
			if v.kind != evString {
				return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgUnsupportedInput, "string"))
			}
			b := []byte(v.s)
			enc.writeVarUint32(uint32(len(b)))
			enc.writeBytes(b)
			return nil
		},
		binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
			n, err := dec.readVarUint32(ctx)
			if err != nil {
				return wrapPathErr(path, err)
			}
			b, err := dec.readBytes(ctx, int(n))
			if err != nil {
				return wrapPathErr(path, err)
			}
			w.writeString(string(b))
			return nil
		},
	}
}

func encodeFixedHex(ctx context.Context, enc *encoder, desc, text string, n int, path string) error {
	if len(text)%2 != 0 {
		return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgOddLengthHex, desc, len(text)))
	}
	b, err := hex.DecodeString(text)
	if err != nil {
		return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgInvalidHex, desc, text, err.Error()))
	}
	if len(b) != n {
		return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgWrongChecksumLen, desc, n, len(b)))
	}
	enc.writeBytes(b)
	return nil
}

func decodeFixedHex(ctx context.Context, dec *decoder, w *jsonWriter, n int, path string) error {
	b, err := dec.readBytes(ctx, n)
	if err != nil {
		return wrapPathErr(path, err)
	}
	w.writeString(hex.EncodeToString(b))
	return nil
}

func bytesAndChecksumCodecs() []*primitiveCodec {
	bytesCodec := &primitiveCodec{
		name: "bytes",
		jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
			text, err := scalarEventText(ctx, ev, path)
			if err != nil {
				return err
			}
			return encodeVarHex(ctx, enc, "bytes", text, path)
		},
		valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
			text, err := scalarValueText(ctx, v, path)
			if err != nil {
				return err
			}
			return encodeVarHex(ctx, enc, "bytes", text, path)
		},
		binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
			n, err := dec.readVarUint32(ctx)
			if err != nil {
				return wrapPathErr(path, err)
			}
			b, err := dec.readBytes(ctx, int(n))
			if err != nil {
				return wrapPathErr(path, err)
			}
			w.writeString(hex.EncodeToString(b))
			return nil
		},
	}

	mkChecksum := func(name string, n int) *primitiveCodec {
		return &primitiveCodec{
			name: name,
			jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
				text, err := scalarEventText(ctx, ev, path)
				if err != nil {
					return err
				}
				return encodeFixedHex(ctx, enc, name, text, n, path)
			},
			valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
				text, err := scalarValueText(ctx, v, path)
				if err != nil {
					return err
				}
				return encodeFixedHex(ctx, enc, name, text, n, path)
			},
			binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
				return decodeFixedHex(ctx, dec, w, n, path)
			},
		}
	}

	return []*primitiveCodec{
		bytesCodec,
		mkChecksum("checksum160", 20),
		mkChecksum("checksum256", 32),
		mkChecksum("checksum512", 64),
	}
}

func encodeVarHex(ctx context.Context, enc *encoder, desc, text string, path string) error {
	if len(text)%2 != 0 {
		return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgOddLengthHex, desc, len(text)))
	}
	b, err := hex.DecodeString(text)
	if err != nil {
		return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgInvalidHex, desc, text, err.Error()))
	}
	enc.writeVarUint32(uint32(len(b)))
	enc.writeBytes(b)
	return nil
}

// chainPrimitiveCodecs wires the blockchain-specific textual codecs
// (name, symbol_code, symbol, asset, the timestamp family) from
// pkg/chaintypes into the primitive table.
func chainPrimitiveCodecs() []*primitiveCodec {
	name := &primitiveCodec{
		name: "name",
		jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
			text, err := scalarEventText(ctx, ev, path)
			if err != nil {
				return err
			}
			n, err := chaintypes.ParseName(ctx, text)
			if err != nil {
				return wrapPathErr(path, err)
			}
			enc.writeUint64(uint64(n))
			return nil
		},
		valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
			text, err := scalarValueText(ctx, v, path)
			if err != nil {
				return err
			}
			n, err := chaintypes.ParseName(ctx, text)
			if err != nil {
				return wrapPathErr(path, err)
			}
			enc.writeUint64(uint64(n))
			return nil
		},
		binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
			v, err := dec.readUint64(ctx)
			if err != nil {
				return wrapPathErr(path, err)
			}
			w.writeString(chaintypes.Name(v).String())
			return nil
		},
	}

	symbolCode := &primitiveCodec{
		name: "symbol_code",
		jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
			text, err := scalarEventText(ctx, ev, path)
			if err != nil {
				return err
			}
			sc, err := chaintypes.ParseSymbolCode(ctx, text)
			if err != nil {
				return wrapPathErr(path, err)
			}
			enc.writeUint64(uint64(sc))
			return nil
		},
		valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
			text, err := scalarValueText(ctx, v, path)
			if err != nil {
				return err
			}
			sc, err := chaintypes.ParseSymbolCode(ctx, text)
			if err != nil {
				return wrapPathErr(path, err)
			}
			enc.writeUint64(uint64(sc))
			return nil
		},
		binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
			v, err := dec.readUint64(ctx)
			if err != nil {
				return wrapPathErr(path, err)
			}
			w.writeString(chaintypes.SymbolCode(v).String())
			return nil
		},
	}

	symbol := &primitiveCodec{
		name: "symbol",
		jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
			text, err := scalarEventText(ctx, ev, path)
			if err != nil {
				return err
			}
			sym, err := chaintypes.ParseSymbol(ctx, text)
			if err != nil {
				return wrapPathErr(path, err)
			}
			enc.writeUint64(uint64(sym))
			return nil
		},
		valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
			text, err := scalarValueText(ctx, v, path)
			if err != nil {
				return err
			}
			sym, err := chaintypes.ParseSymbol(ctx, text)
			if err != nil {
				return wrapPathErr(path, err)
			}
			enc.writeUint64(uint64(sym))
			return nil
		},
		binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
			v, err := dec.readUint64(ctx)
			if err != nil {
				return wrapPathErr(path, err)
			}
			w.writeString(chaintypes.Symbol(v).String())
			return nil
		},
	}

	asset := &primitiveCodec{
		name: "asset",
		jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
			text, err := scalarEventText(ctx, ev, path)
			if err != nil {
				return err
			}
			a, err := chaintypes.ParseAsset(ctx, text)
			if err != nil {
				return wrapPathErr(path, err)
			}
			enc.writeUint64(uint64(a.Amount))
			enc.writeUint64(uint64(a.Sym))
			return nil
		},
		valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
			text, err := scalarValueText(ctx, v, path)
			if err != nil {
				return err
			}
			a, err := chaintypes.ParseAsset(ctx, text)
			if err != nil {
				return wrapPathErr(path, err)
			}
			enc.writeUint64(uint64(a.Amount))
			enc.writeUint64(uint64(a.Sym))
			return nil
		},
		binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
			amount, err := dec.readUint64(ctx)
			if err != nil {
				return wrapPathErr(path, err)
			}
			sym, err := dec.readUint64(ctx)
			if err != nil {
				return wrapPathErr(path, err)
			}
			a := chaintypes.Asset{Amount: int64(amount), Sym: chaintypes.Symbol(sym)}
			w.writeString(a.String())
			return nil
		},
	}

	timePoint := &primitiveCodec{
		name: "time_point",
		jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
			text, err := scalarEventText(ctx, ev, path)
			if err != nil {
				return err
			}
			tp, err := chaintypes.ParseTimePoint(ctx, text)
			if err != nil {
				return wrapPathErr(path, err)
			}
			enc.writeUint64(uint64(tp))
			return nil
		},
		valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
			text, err := scalarValueText(ctx, v, path)
			if err != nil {
				return err
			}
			tp, err := chaintypes.ParseTimePoint(ctx, text)
			if err != nil {
				return wrapPathErr(path, err)
			}
			enc.writeUint64(uint64(tp))
			return nil
		},
		binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
			v, err := dec.readUint64(ctx)
			if err != nil {
				return wrapPathErr(path, err)
			}
			w.writeString(chaintypes.TimePoint(v).String())
			return nil
		},
	}

	timePointSec := &primitiveCodec{
		name: "time_point_sec",
		jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
			text, err := scalarEventText(ctx, ev, path)
			if err != nil {
				return err
			}
			tp, err := chaintypes.ParseTimePointSec(ctx, text)
			if err != nil {
				return wrapPathErr(path, err)
			}
			enc.writeUint32(uint32(tp))
			return nil
		},
		valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
			text, err := scalarValueText(ctx, v, path)
			if err != nil {
				return err
			}
			tp, err := chaintypes.ParseTimePointSec(ctx, text)
			if err != nil {
				return wrapPathErr(path, err)
			}
			enc.writeUint32(uint32(tp))
			return nil
		},
		binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
			v, err := dec.readUint32(ctx)
			if err != nil {
				return wrapPathErr(path, err)
			}
			w.writeString(chaintypes.TimePointSec(v).String())
			return nil
		},
	}

	blockTimestamp := &primitiveCodec{
		name: "block_timestamp_type",
		jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
			text, err := scalarEventText(ctx, ev, path)
			if err != nil {
				return err
			}
			bt, err := chaintypes.ParseBlockTimestamp(ctx, text)
			if err != nil {
				return wrapPathErr(path, err)
			}
			enc.writeUint32(uint32(bt))
			return nil
		},
		valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
			text, err := scalarValueText(ctx, v, path)
			if err != nil {
				return err
			}
			bt, err := chaintypes.ParseBlockTimestamp(ctx, text)
			if err != nil {
				return wrapPathErr(path, err)
			}
			enc.writeUint32(uint32(bt))
			return nil
		},
		binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
			v, err := dec.readUint32(ctx)
			if err != nil {
				return wrapPathErr(path, err)
			}
			w.writeString(chaintypes.BlockTimestamp(v).String())
			return nil
		},
	}

	return []*primitiveCodec{name, symbolCode, symbol, asset, timePoint, timePointSec, blockTimestamp}
}

// keyCodecs wires public_key/private_key/signature, delegating the
// base58/RIPEMD-160 text transforms to pkg/chainkeys. The wire layout
// (one curve-tag byte, then fixed material, with WA carrying extra
// length-prefixed blobs) is specified here since it is the primitive
// table's concern, not chainkeys'.
func keyCodecs() []*primitiveCodec {
	publicKey := &primitiveCodec{
		name: "public_key",
		jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
			text, err := scalarEventText(ctx, ev, path)
			if err != nil {
				return err
			}
			return encodePublicKey(ctx, enc, text, path)
		},
		valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
			text, err := scalarValueText(ctx, v, path)
			if err != nil {
				return err
			}
			return encodePublicKey(ctx, enc, text, path)
		},
		binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
			return decodePublicKey(ctx, dec, w, path)
		},
	}
	privateKey := &primitiveCodec{
		name: "private_key",
		jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
			text, err := scalarEventText(ctx, ev, path)
			if err != nil {
				return err
			}
			return encodePrivateKey(ctx, enc, text, path)
		},
		valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
			text, err := scalarValueText(ctx, v, path)
			if err != nil {
				return err
			}
			return encodePrivateKey(ctx, enc, text, path)
		},
		binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
			return decodePrivateKey(ctx, dec, w, path)
		},
	}
	signature := &primitiveCodec{
		name: "signature",
		jsonToBin: func(ctx context.Context, enc *encoder, ev event, path string) error {
			text, err := scalarEventText(ctx, ev, path)
			if err != nil {
				return err
			}
			return encodeSignature(ctx, enc, text, path)
		},
		valueToBin: func(ctx context.Context, enc *encoder, v value, path string) error {
			text, err := scalarValueText(ctx, v, path)
			if err != nil {
				return err
			}
			return encodeSignature(ctx, enc, text, path)
		},
		binToJSON: func(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
			return decodeSignature(ctx, dec, w, path)
		},
	}
	return []*primitiveCodec{publicKey, privateKey, signature}
}

// readWireMaterial reads a key/signature's fixed-size portion, followed
// by nBlobs WA-style varuint32-length-prefixed blobs (nBlobs is 0 for
// K1/R1). The length-prefix bytes are kept in the returned slice rather
// than discarded, so the result is exactly the byte run that followed
// the curve tag on the wire - passing it to chainkeys.EncodeModern and
// later back through chainkeys.DecodeModern reproduces those same wire
// bytes with nothing lost, including any WA blob content.
func readWireMaterial(ctx context.Context, dec *decoder, fixedLen, nBlobs int, path string) ([]byte, error) {
	fixed, err := dec.readBytes(ctx, fixedLen)
	if err != nil {
		return nil, wrapPathErr(path, err)
	}
	out := append([]byte{}, fixed...)
	for i := 0; i < nBlobs; i++ {
		n, err := dec.readVarUint32(ctx)
		if err != nil {
			return nil, wrapPathErr(path, err)
		}
		blob, err := dec.readBytes(ctx, int(n))
		if err != nil {
			return nil, wrapPathErr(path, err)
		}
		lenPrefix := newEncoder()
		lenPrefix.writeVarUint32(n)
		out = append(out, lenPrefix.bytes()...)
		out = append(out, blob...)
	}
	return out, nil
}

func encodePublicKey(ctx context.Context, enc *encoder, text string, path string) error {
	if len(text) >= 3 && text[0:3] == "EOS" {
		data, err := chainkeys.DecodeLegacyPublicKey(ctx, text)
		if err != nil {
			return wrapPathErr(path, err)
		}
		if err := chainkeys.ValidateK1PublicKey(ctx, data); err != nil {
			return wrapPathErr(path, err)
		}
		enc.writeByte(byte(chainkeys.CurveK1))
		enc.writeBytes(data[:])
		return nil
	}
	curve, data, err := chainkeys.DecodeModern(ctx, "PUB", text, 0)
	if err != nil {
		return wrapPathErr(path, err)
	}
	switch curve {
	case chainkeys.CurveK1, chainkeys.CurveR1:
		if len(data) != 33 {
			return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgInvalidKeyLength, "public_key", 33, len(data)))
		}
		if curve == chainkeys.CurveK1 {
			var fixed [33]byte
			copy(fixed[:], data)
			if err := chainkeys.ValidateK1PublicKey(ctx, fixed); err != nil {
				return wrapPathErr(path, err)
			}
		}
	case chainkeys.CurveWA:
		if len(data) < 34 {
			return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgInvalidKeyLength, "public_key", 34, len(data)))
		}
	}
	// data is exactly the wire payload that follows the curve tag byte:
	// the raw 33 bytes for K1/R1, or the fixed 34 bytes plus its own
	// varuint32-prefixed blob for WA (see readWireMaterial). No extra
	// framing belongs here - writing one would desynchronize decodePublicKey.
	enc.writeByte(byte(curve))
	enc.writeBytes(data)
	return nil
}

func decodePublicKey(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
	tag, err := dec.readByte(ctx)
	if err != nil {
		return wrapPathErr(path, err)
	}
	curve := chainkeys.CurveType(tag)
	if curve == chainkeys.CurveK1 {
		b, err := dec.readBytes(ctx, 33)
		if err != nil {
			return wrapPathErr(path, err)
		}
		var fixed [33]byte
		copy(fixed[:], b)
		w.writeString(chainkeys.EncodeLegacyPublicKey(fixed))
		return nil
	}
	fixedLen, nBlobs := 33, 0
	if curve == chainkeys.CurveWA {
		fixedLen, nBlobs = 34, 1
	}
	data, err := readWireMaterial(ctx, dec, fixedLen, nBlobs, path)
	if err != nil {
		return err
	}
	w.writeString(chainkeys.EncodeModern("PUB", curve, data))
	return nil
}

func encodePrivateKey(ctx context.Context, enc *encoder, text string, path string) error {
	curve, data, err := chainkeys.DecodeModern(ctx, "PVT", text, 32)
	if err != nil {
		return wrapPathErr(path, err)
	}
	enc.writeByte(byte(curve))
	enc.writeBytes(data)
	return nil
}

func decodePrivateKey(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
	tag, err := dec.readByte(ctx)
	if err != nil {
		return wrapPathErr(path, err)
	}
	curve := chainkeys.CurveType(tag)
	data, err := dec.readBytes(ctx, 32)
	if err != nil {
		return wrapPathErr(path, err)
	}
	w.writeString(chainkeys.EncodeModern("PVT", curve, data))
	return nil
}

func encodeSignature(ctx context.Context, enc *encoder, text string, path string) error {
	curve, data, err := chainkeys.DecodeModern(ctx, "SIG", text, 0)
	if err != nil {
		return wrapPathErr(path, err)
	}
	if curve != chainkeys.CurveWA && len(data) != 65 {
		return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgInvalidKeyLength, "signature", 65, len(data)))
	}
	if curve == chainkeys.CurveWA && len(data) < 65 {
		return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgInvalidKeyLength, "signature", 65, len(data)))
	}
	// data is exactly the wire payload that follows the curve tag byte:
	// the raw 65 bytes for K1/R1, or the fixed 65 bytes plus its two own
	// varuint32-prefixed blobs (authenticator-data, client-data-json) for
	// WA (see readWireMaterial/decodeSignature). No re-derivation of
	// blob lengths belongs here.
	enc.writeByte(byte(curve))
	enc.writeBytes(data)
	return nil
}

func decodeSignature(ctx context.Context, dec *decoder, w *jsonWriter, path string) error {
	tag, err := dec.readByte(ctx)
	if err != nil {
		return wrapPathErr(path, err)
	}
	curve := chainkeys.CurveType(tag)
	nBlobs := 0
	if curve == chainkeys.CurveWA {
		nBlobs = 2
	}
	data, err := readWireMaterial(ctx, dec, 65, nBlobs, path)
	if err != nil {
		return err
	}
	w.writeString(chainkeys.EncodeModern("SIG", curve, data))
	return nil
}
