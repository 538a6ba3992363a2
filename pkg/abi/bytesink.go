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
	"encoding/binary"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/sysio-chain/abicodec/internal/abimsgs"
)

// encoder is the append-only output buffer the json2bin engine writes
// to. Arrays need their varuint32-encoded element count before their
// payload, which the event stream does not know until the matching
// end_array fires; rather than splicing a deferred slot in place (which
// needs byte-shifting whenever the LEB128 count changes width), an
// array's elements are encoded into a fresh child encoder and spliced
// onto the parent once the count is known - equivalent wire output,
// no in-place patching.
type encoder struct {
	buf []byte
}

func newEncoder() *encoder {
	return &encoder{buf: make([]byte, 0, 64)}
}

func (e *encoder) bytes() []byte { return e.buf }

func (e *encoder) writeByte(b byte) {
	e.buf = append(e.buf, b)
}

func (e *encoder) writeBytes(b []byte) {
	e.buf = append(e.buf, b...)
}

func (e *encoder) writeUint16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	e.writeBytes(tmp[:])
}

func (e *encoder) writeUint32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	e.writeBytes(tmp[:])
}

func (e *encoder) writeUint64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	e.writeBytes(tmp[:])
}

// writeVarUint32 writes v as LEB128: 7 payload bits per byte, MSB set
// on every byte but the last.
func (e *encoder) writeVarUint32(v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		e.writeByte(b)
		if v == 0 {
			return
		}
	}
}

// writeVarInt32 zig-zag encodes v, then writes it as writeVarUint32.
func (e *encoder) writeVarInt32(v int32) {
	zz := uint32((v << 1) ^ (v >> 31))
	e.writeVarUint32(zz)
}

// decoder is the byte cursor the bin2json engine reads from.
type decoder struct {
	buf []byte
	pos int
}

func newDecoder(b []byte) *decoder {
	return &decoder{buf: b}
}

func (d *decoder) remaining() int { return len(d.buf) - d.pos }
func (d *decoder) atEnd() bool    { return d.pos >= len(d.buf) }

func (d *decoder) readByte(ctx context.Context) (byte, error) {
	if d.atEnd() {
		return 0, i18n.NewError(ctx, abimsgs.MsgTruncatedInput)
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) readBytes(ctx context.Context, n int) ([]byte, error) {
	if n < 0 || d.remaining() < n {
		return nil, i18n.NewError(ctx, abimsgs.MsgTruncatedInput)
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) readUint16(ctx context.Context) (uint16, error) {
	b, err := d.readBytes(ctx, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (d *decoder) readUint32(ctx context.Context) (uint32, error) {
	b, err := d.readBytes(ctx, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *decoder) readUint64(ctx context.Context) (uint64, error) {
	b, err := d.readBytes(ctx, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// readVarUint32 reads a LEB128 unsigned varint, erroring on overflow
// past 32 bits or on a payload that never terminates within the input.
func (d *decoder) readVarUint32(ctx context.Context) (uint32, error) {
	var result uint32
	var shift uint
	for {
		b, err := d.readByte(ctx)
		if err != nil {
			return 0, err
		}
		if shift >= 32 || (shift == 28 && b&0x7f > 0x0f) {
			return 0, i18n.NewError(ctx, abimsgs.MsgVaruintOverflow)
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

func (d *decoder) readVarInt32(ctx context.Context) (int32, error) {
	zz, err := d.readVarUint32(ctx)
	if err != nil {
		return 0, err
	}
	return int32(zz>>1) ^ -int32(zz&1), nil
}
