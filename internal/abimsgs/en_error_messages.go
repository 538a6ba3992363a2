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

package abimsgs

import "github.com/hyperledger/firefly-common/pkg/i18n"

var ffe = i18n.FFE

// The structural path (my_struct.field[3]<variant>) is never baked into
// these templates - it is prepended once, by wrapPathErr, at the point
// an error is first returned. That keeps the catalogue describing only
// what went wrong, not where.
//
//revive:disable
var (
	// Schema errors - raised while building the type graph from an ABI document
	MsgUnsupportedABIVersion = ffe("FF23000", "Unsupported ABI version %q, expected prefix %q")
	MsgUnknownType           = ffe("FF23001", "Unknown type %q")
	MsgDuplicateTypeName     = ffe("FF23002", "Duplicate type name %q")
	MsgInvalidNestedPseudo   = ffe("FF23003", "Type %q cannot be nested inside an optional/array/extension")
	MsgExtensionNotLast      = ffe("FF23004", "Binary extension type %q may only appear as a tail field of a struct")
	MsgAliasOfExtension      = ffe("FF23005", "Typedef %q cannot target a binary extension type")
	MsgRecursionLimit        = ffe("FF23006", "abi recursion limit reached")
	MsgUnknownBase           = ffe("FF23007", "Unknown base type %q for struct %q")
	MsgUnknownVariantCase    = ffe("FF23008", "Unknown case type %q for variant %q")
	MsgNoSuchActionType      = ffe("FF23009", "No action registered for name %q")
	MsgNoSuchTableType       = ffe("FF23010", "No table registered for name %q")
	MsgNoSuchTypeForEncode   = ffe("FF23011", "Unknown ABI type %q passed to json_to_bin/bin_to_json")

	// JSON shape errors - raised while driving the JSON event stream (or value tree) against the type graph
	MsgExpectedObject         = ffe("FF23100", "expected object, got %s")
	MsgExpectedArray          = ffe("FF23101", "expected array, got %s")
	MsgExpectedKey            = ffe("FF23102", "expected field %q, got %q")
	MsgUnexpectedKey          = ffe("FF23103", "unexpected field %q - all fields have already been supplied")
	MsgMissingField           = ffe("FF23104", "missing required field %q")
	MsgVariantShape           = ffe("FF23105", "variant must be encoded as [\"case_name\", value], got %s")
	MsgVariantCaseNotFound    = ffe("FF23106", "unknown variant case %q")
	MsgVariantTooManyElements = ffe("FF23107", "variant array must have exactly 2 elements")
	MsgStackOverflow          = ffe("FF23108", "stack depth exceeds limit of %d frames")
	MsgUnexpectedEvent        = ffe("FF23109", "unexpected JSON event %s")
	MsgExpectedScalar         = ffe("FF23110", "expected a scalar value, got %s")
	MsgMalformedJSON          = ffe("FF23111", "malformed JSON input: %s")

	// Lexical errors - raised while parsing/formatting primitive text representations
	MsgOddLengthHex       = ffe("FF23200", "%s: hex string must have an even number of digits, got %d")
	MsgInvalidHex         = ffe("FF23201", "%s: invalid hex string %q: %s")
	MsgWrongChecksumLen   = ffe("FF23202", "%s: expected %d bytes, got %d")
	MsgIntegerOverflow    = ffe("FF23203", "%s: value %q does not fit")
	MsgInvalidInteger     = ffe("FF23204", "%s: invalid integer %q")
	MsgInvalidFloat       = ffe("FF23205", "%s: invalid float %q")
	MsgInvalidName        = ffe("FF23206", "%s: invalid name %q: character %q not in name alphabet")
	MsgNameTooLong        = ffe("FF23207", "%s: name %q exceeds 13 characters")
	MsgInvalidSymbolCode  = ffe("FF23208", "%s: invalid symbol code %q: must be 1-7 uppercase letters")
	MsgInvalidSymbol      = ffe("FF23209", "%s: invalid symbol %q: expected format PRECISION,CODE")
	MsgInvalidPrecision   = ffe("FF23210", "%s: invalid symbol precision %q: must be 0-18")
	MsgInvalidAsset       = ffe("FF23211", "%s: invalid asset %q: expected format \"<amount> <SYMBOL>\"")
	MsgInvalidTimestamp   = ffe("FF23212", "%s: invalid timestamp %q: %s")
	MsgInvalidKeyType     = ffe("FF23213", "%s: unknown key/signature type prefix %q")
	MsgInvalidKeyChecksum = ffe("FF23214", "%s: checksum mismatch")
	MsgInvalidKeyLength   = ffe("FF23215", "%s: expected %d bytes, got %d")
	MsgUnsupportedInput   = ffe("FF23216", "cannot interpret input as %s")

	// Wire errors - raised while consuming/producing binary bytes
	MsgTruncatedInput    = ffe("FF23300", "unexpected end of binary data")
	MsgInvalidVariantIdx = ffe("FF23301", "variant index %d out of range (have %d cases)")
	MsgInvalidOptionTag  = ffe("FF23302", "invalid optional presence tag %d, expected 0 or 1")
	MsgVaruintOverflow   = ffe("FF23303", "varuint32 overflows 32 bits")
	MsgArrayCountTooBig  = ffe("FF23304", "array count %d exceeds maximum of %d")
)
