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

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/sysio-chain/abicodec/internal/abimsgs"
)

// BinToJSON is the dual of JSONToBin: it drives the named type against a
// binary byte cursor, producing its JSON text.
func (c *Contract) BinToJSON(typeName string, bin []byte) ([]byte, error) {
	return c.BinToJSONCtx(context.Background(), typeName, bin)
}

func (c *Contract) BinToJSONCtx(ctx context.Context, typeName string, bin []byte) ([]byte, error) {
	node, err := c.getTypeForEncode(ctx, typeName)
	if err != nil {
		return nil, err
	}
	dec := newDecoder(bin)
	w := newJSONWriter()
	if err := decodeNode(ctx, dec, w, node, true, typeName, 0); err != nil {
		return nil, err
	}
	return w.bytes(), nil
}

// decodeNode is bin2json's dispatch, the mirror image of json2bin's
// encodeNode: it reads exactly the bytes that make up one value of
// node's type and writes the equivalent JSON to w. allowExtensions and
// depth carry the same meaning as on the encode side.
func decodeNode(ctx context.Context, dec *decoder, w *jsonWriter, node *typeNode, allowExtensions bool, path string, depth int) error {
	if depth >= maxStackFrames {
		return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgStackOverflow, maxStackFrames))
	}

	switch node.kind {
	case KindPrimitive:
		return node.prim.binToJSON(ctx, dec, w, path)

	case KindOptional:
		tag, err := dec.readByte(ctx)
		if err != nil {
			return wrapPathErr(path, err)
		}
		switch tag {
		case 0:
			w.writeNull()
			return nil
		case 1:
			return decodeNode(ctx, dec, w, node.inner, false, optionalPath(path), depth+1)
		default:
			return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgInvalidOptionTag, int(tag)))
		}

	case KindExtension:
		return decodeNode(ctx, dec, w, node.inner, allowExtensions, path, depth+1)

	case KindArray:
		count, err := dec.readVarUint32(ctx)
		if err != nil {
			return wrapPathErr(path, err)
		}
		// Every element is at least one byte on the wire, so a count
		// exceeding the bytes left in the buffer can only be a corrupt or
		// hostile input - reject it before looping, rather than reading
		// element-by-element until a truncated-input error eventually
		// surfaces many allocations later.
		if int(count) > dec.remaining() {
			return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgArrayCountTooBig, count, dec.remaining()))
		}
		w.startArray()
		for i := uint32(0); i < count; i++ {
			if err := decodeNode(ctx, dec, w, node.inner, false, indexPath(path, int(i)), depth+1); err != nil {
				return err
			}
		}
		w.endArray()
		return nil

	case KindVariant:
		idx, err := dec.readVarUint32(ctx)
		if err != nil {
			return wrapPathErr(path, err)
		}
		if int(idx) >= len(node.cases) {
			return wrapPathErr(variantPath(path), i18n.NewError(ctx, abimsgs.MsgInvalidVariantIdx, int(idx), len(node.cases)))
		}
		w.startArray()
		w.writeString(node.cases[idx].name)
		if err := decodeNode(ctx, dec, w, node.cases[idx], false, variantPath(path), depth+1); err != nil {
			return err
		}
		w.endArray()
		return nil

	case KindStruct:
		return decodeStruct(ctx, dec, w, node, allowExtensions, path, depth)

	default:
		return wrapPathErr(path, i18n.NewError(ctx, abimsgs.MsgUnknownType, node.name))
	}
}

// decodeStruct writes each field's key in declared order, then its
// value. A tail binary-extension field with no bytes left to read is
// omitted entirely, mirroring the encode side's optional absence of a
// JSON key - per the type's binary extension contract, this is the only
// condition under which a struct may legitimately run out of bytes
// before its field list does.
func decodeStruct(ctx context.Context, dec *decoder, w *jsonWriter, node *typeNode, allowExtensions bool, path string, depth int) error {
	w.startObject()
	// Checks every remaining field against the byte stream directly (like
	// encodeValueStruct, not like the single-shot SAX encodeStruct), so it
	// allows a trailing run of extension fields to be absent, not just the
	// struct's last field - symmetric with what encodeValueStruct can now
	// produce. fillStruct guarantees extension fields are contiguous at
	// the tail, so this cannot swallow a required field.
	for _, f := range node.fields {
		fieldAllowsExtension := allowExtensions && f.typ.kind == KindExtension

		if fieldAllowsExtension && dec.atEnd() {
			continue
		}
		w.key(f.name)
		if err := decodeNode(ctx, dec, w, f.typ, fieldAllowsExtension, fieldPath(path, f.name), depth+1); err != nil {
			return err
		}
	}
	w.endObject()
	return nil
}
