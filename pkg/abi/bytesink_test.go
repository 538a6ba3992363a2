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

func TestVarUint32RoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 127, 128, 16383, 16384, 4294967295}
	for _, v := range cases {
		enc := newEncoder()
		enc.writeVarUint32(v)
		dec := newDecoder(enc.bytes())
		got, err := dec.readVarUint32(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, v, got)
		assert.True(t, dec.atEnd())
	}
}

func TestVarInt32RoundTrip(t *testing.T) {
	cases := []int32{0, 1, -1, 63, -64, 1000000, -1000000}
	for _, v := range cases {
		enc := newEncoder()
		enc.writeVarInt32(v)
		dec := newDecoder(enc.bytes())
		got, err := dec.readVarInt32(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestReadVarUint32Overflow(t *testing.T) {
	dec := newDecoder([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	_, err := dec.readVarUint32(context.Background())
	assert.Error(t, err)
}

func TestReadByteTruncated(t *testing.T) {
	dec := newDecoder(nil)
	_, err := dec.readByte(context.Background())
	assert.Error(t, err)
}

func TestUint32LittleEndian(t *testing.T) {
	enc := newEncoder()
	enc.writeUint32(1)
	assert.Equal(t, []byte{1, 0, 0, 0}, enc.bytes())
}
