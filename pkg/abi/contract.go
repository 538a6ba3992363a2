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
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/sysio-chain/abicodec/internal/abimsgs"
)

// TypeKind classifies a typeNode. Rather than the virtual dispatch an
// object-oriented ABI library would use, the two engines (json2bin,
// bin2json) switch on this tag and look primitive behavior up in the
// primitiveTable codecs - this keeps the set of behaviors exhaustively
// checkable.
type TypeKind int

const (
	KindPrimitive TypeKind = iota
	KindOptional
	KindArray
	KindExtension
	KindStruct
	KindVariant
)

// maxRecursionDepth bounds alias resolution and struct/variant filling,
// per the "abi recursion limit reached" contract.
const maxRecursionDepth = 32

// maxStackFrames bounds the json2bin/bin2json engines' recursion depth
// (each nested dispatch call counts as one frame), independent of the
// type graph's own recursion bound.
const maxStackFrames = 128

// fieldNode is one field of a filled struct: a name paired with its
// resolved type.
type fieldNode struct {
	name string
	typ  *typeNode
}

// typeNode is a single vertex of the resolved type graph. At most one of
// {inner (for Optional/Array/Extension), base (for Struct)} is set,
// matching the ABI model's invariant that a type is exactly one of these
// shapes.
type typeNode struct {
	name string
	kind TypeKind

	// KindPrimitive
	prim *primitiveCodec

	// KindOptional / KindArray / KindExtension
	inner *typeNode

	// KindStruct
	base         *typeNode
	rawFields    []FieldDef
	fields       []fieldNode
	filledStruct bool

	// KindVariant
	rawCases      []string
	cases         []*typeNode
	filledVariant bool
}

// isPseudo reports whether this node is itself an Optional, Array or
// Extension type (its inner types are not inspected) - used to validate
// that an optional/array may not directly wrap another pseudo-type.
func (n *typeNode) isPseudo() bool {
	return n.kind == KindOptional || n.kind == KindArray || n.kind == KindExtension
}

// Contract is the resolved, immutable type graph for one ABI document.
// It is safe to share a *Contract across concurrent encode/decode calls:
// nothing under Contract is ever mutated after BuildContract returns.
type Contract struct {
	abi   *ABIDef
	types map[string]*typeNode
}

func newContract(def *ABIDef) *Contract {
	return &Contract{
		abi:   def,
		types: make(map[string]*typeNode),
	}
}

// ABI returns the parsed ABI document this contract was built from.
func (c *Contract) ABI() *ABIDef {
	return c.abi
}

func (c *Contract) insertStub(ctx context.Context, name string) error {
	if _, exists := c.types[name]; exists {
		return i18n.NewError(ctx, abimsgs.MsgDuplicateTypeName, name)
	}
	return nil
}

// fillContract builds the full registry from the parsed ABI document, per
// the steps in the resolver's contract:
//  1. insert every primitive
//  2. insert the built-in extended_asset struct
//  3. insert alias stubs (duplicates are errors)
//  4. insert struct stubs (duplicates are errors)
//  5. insert variant stubs (duplicates are errors)
//  6. resolve every alias to its final target
//  7. fill every struct and variant (field lists, case lists)
//  8. verify no alias resolves to an extension type
func (c *Contract) fillContract(ctx context.Context) error {
	registerPrimitives(c)

	if err := c.insertBuiltinExtendedAsset(ctx); err != nil {
		return err
	}

	aliasNames := make([]string, 0, len(c.abi.Types))
	pendingAlias := make(map[string]bool, len(c.abi.Types))
	for _, td := range c.abi.Types {
		if err := c.insertStub(ctx, td.NewTypeName); err != nil {
			return err
		}
		// Placeholder; replaced by the resolved target in step 6.
		c.types[td.NewTypeName] = &typeNode{name: td.NewTypeName}
		aliasNames = append(aliasNames, td.NewTypeName)
		pendingAlias[td.NewTypeName] = true
	}
	aliasTarget := make(map[string]string, len(c.abi.Types))
	for _, td := range c.abi.Types {
		aliasTarget[td.NewTypeName] = td.Type
	}

	for _, sd := range c.abi.Structs {
		if err := c.insertStub(ctx, sd.Name); err != nil {
			return err
		}
		sdCopy := sd
		c.types[sd.Name] = &typeNode{name: sd.Name, kind: KindStruct, rawFields: sdCopy.Fields}
	}

	for _, vd := range c.abi.Variants {
		if err := c.insertStub(ctx, vd.Name); err != nil {
			return err
		}
		vdCopy := vd
		c.types[vd.Name] = &typeNode{name: vd.Name, kind: KindVariant, rawCases: vdCopy.Types}
	}

	for _, name := range aliasNames {
		if err := c.resolveAlias(ctx, name, aliasTarget, pendingAlias, make(map[string]bool), 0); err != nil {
			return err
		}
	}

	if err := c.fillStruct(ctx, c.types["extended_asset"], 0); err != nil {
		return err
	}
	for _, sd := range c.abi.Structs {
		if err := c.fillStruct(ctx, c.types[sd.Name], 0); err != nil {
			return err
		}
	}
	for _, vd := range c.abi.Variants {
		if err := c.fillVariant(ctx, c.types[vd.Name], 0); err != nil {
			return err
		}
	}

	return nil
}

func (c *Contract) insertBuiltinExtendedAsset(ctx context.Context) error {
	const name = "extended_asset"
	if _, exists := c.types[name]; exists {
		return i18n.NewError(ctx, abimsgs.MsgDuplicateTypeName, name)
	}
	c.types[name] = &typeNode{
		name: name,
		kind: KindStruct,
		rawFields: []FieldDef{
			{Name: "quantity", Type: "asset"},
			{Name: "contract", Type: "name"},
		},
	}
	return nil
}

// resolveAlias walks the alias name's target chain (possibly through
// other aliases) and replaces the registry entry for `name` with the
// final, non-alias target node - per spec.md's "caches the resolved
// target back into the alias node". pendingAlias tracks which registry
// entries are still unresolved alias stubs; visiting detects cycles
// within the current resolution chain.
func (c *Contract) resolveAlias(ctx context.Context, name string, aliasTarget map[string]string, pendingAlias, visiting map[string]bool, depth int) error {
	if depth >= maxRecursionDepth {
		return i18n.NewError(ctx, abimsgs.MsgRecursionLimit)
	}
	if !pendingAlias[name] {
		// Already resolved (e.g. reached via another alias's chain).
		return nil
	}
	if visiting[name] {
		return i18n.NewError(ctx, abimsgs.MsgRecursionLimit)
	}
	visiting[name] = true
	defer delete(visiting, name)

	target := aliasTarget[name]
	if pendingAlias[target] {
		if err := c.resolveAlias(ctx, target, aliasTarget, pendingAlias, visiting, depth+1); err != nil {
			return err
		}
		c.types[name] = c.types[target]
		delete(pendingAlias, name)
		return nil
	}
	resolved, err := c.getType(ctx, target, depth+1)
	if err != nil {
		return err
	}
	if resolved.kind == KindExtension {
		return i18n.NewError(ctx, abimsgs.MsgAliasOfExtension, name)
	}
	c.types[name] = resolved
	delete(pendingAlias, name)
	return nil
}

// GetType is the public type lookup: given a canonical or suffixed type
// name, returns the kind of its node, synthesizing Optional/Array/
// Extension pseudo-types on demand and enforcing their nesting rules.
func (c *Contract) GetType(name string) (TypeKind, error) {
	n, err := c.getType(context.Background(), name, 0)
	if err != nil {
		return 0, err
	}
	return n.kind, nil
}

// getTypeForEncode resolves the type name passed directly to one of the
// json_to_bin/bin_to_json entry points (JSONToBinCtx, JSONValueToBinCtx,
// BinToJSONCtx), raising a dedicated error distinct from the generic
// unknown-type error raised for a type name nested inside a struct/array/
// variant definition.
func (c *Contract) getTypeForEncode(ctx context.Context, name string) (*typeNode, error) {
	node, err := c.getType(ctx, name, 0)
	if err != nil {
		return nil, i18n.NewError(ctx, abimsgs.MsgNoSuchTypeForEncode, name)
	}
	return node, nil
}

func (c *Contract) getType(ctx context.Context, name string, depth int) (*typeNode, error) {
	if depth >= maxRecursionDepth {
		return nil, i18n.NewError(ctx, abimsgs.MsgRecursionLimit)
	}
	if n, ok := c.types[name]; ok {
		return n, nil
	}

	switch {
	case strings.HasSuffix(name, "$"):
		base := name[:len(name)-1]
		inner, err := c.getType(ctx, base, depth+1)
		if err != nil {
			return nil, err
		}
		if inner.kind == KindExtension {
			return nil, i18n.NewError(ctx, abimsgs.MsgInvalidNestedPseudo, name)
		}
		n := &typeNode{name: name, kind: KindExtension, inner: inner}
		c.types[name] = n
		return n, nil

	case strings.HasSuffix(name, "[]"):
		base := name[:len(name)-2]
		inner, err := c.getType(ctx, base, depth+1)
		if err != nil {
			return nil, err
		}
		if inner.isPseudo() {
			return nil, i18n.NewError(ctx, abimsgs.MsgInvalidNestedPseudo, name)
		}
		n := &typeNode{name: name, kind: KindArray, inner: inner}
		c.types[name] = n
		return n, nil

	case strings.HasSuffix(name, "?"):
		base := name[:len(name)-1]
		inner, err := c.getType(ctx, base, depth+1)
		if err != nil {
			return nil, err
		}
		if inner.isPseudo() {
			return nil, i18n.NewError(ctx, abimsgs.MsgInvalidNestedPseudo, name)
		}
		n := &typeNode{name: name, kind: KindOptional, inner: inner}
		c.types[name] = n
		return n, nil

	default:
		return nil, i18n.NewError(ctx, abimsgs.MsgUnknownType, name)
	}
}

// fillStruct populates node.fields (base fields, in declaration order,
// followed by the struct's own fields), resolving each field's type name.
func (c *Contract) fillStruct(ctx context.Context, node *typeNode, depth int) error {
	if node.filledStruct {
		return nil
	}
	if depth >= maxRecursionDepth {
		return i18n.NewError(ctx, abimsgs.MsgRecursionLimit)
	}

	var fields []fieldNode
	sawExtension := false

	// We don't carry the raw base name on typeNode directly - the ABI's
	// StructDef does, so look it up by name to find the base, if any.
	var baseName string
	for _, sd := range c.abi.Structs {
		if sd.Name == node.name {
			baseName = sd.Base
			break
		}
	}
	if baseName != "" {
		baseNode, ok := c.types[baseName]
		if !ok {
			return i18n.NewError(ctx, abimsgs.MsgUnknownBase, baseName, node.name)
		}
		if baseNode.kind == KindStruct {
			if err := c.fillStruct(ctx, baseNode, depth+1); err != nil {
				return err
			}
			fields = append(fields, baseNode.fields...)
			for _, f := range baseNode.fields {
				if f.typ.kind == KindExtension {
					sawExtension = true
				}
			}
		}
		node.base = baseNode
	}

	for _, fd := range node.rawFields {
		ft, err := c.getType(ctx, fd.Type, 0)
		if err != nil {
			return err
		}
		if sawExtension && ft.kind != KindExtension {
			return i18n.NewError(ctx, abimsgs.MsgExtensionNotLast, fd.Type)
		}
		if ft.kind == KindExtension {
			sawExtension = true
		}
		fields = append(fields, fieldNode{name: fd.Name, typ: ft})
	}

	node.fields = fields
	node.filledStruct = true
	return nil
}

// fillVariant populates node.cases with the resolved type of each case
// name, in declaration order.
func (c *Contract) fillVariant(ctx context.Context, node *typeNode, depth int) error {
	if node.filledVariant {
		return nil
	}
	if depth >= maxRecursionDepth {
		return i18n.NewError(ctx, abimsgs.MsgRecursionLimit)
	}
	cases := make([]*typeNode, len(node.rawCases))
	for i, caseName := range node.rawCases {
		ct, err := c.getType(ctx, caseName, 0)
		if err != nil {
			return i18n.NewError(ctx, abimsgs.MsgUnknownVariantCase, caseName, node.name)
		}
		cases[i] = ct
	}
	node.cases = cases
	node.filledVariant = true
	return nil
}

// caseIndex returns the 0-based ordinal of a case name within a variant.
func (n *typeNode) caseIndex(name string) int {
	for i, c := range n.cases {
		if c.name == name {
			return i
		}
	}
	return -1
}
