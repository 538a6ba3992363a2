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

/*
Package abi implements a bidirectional, ABI-driven codec between a
self-describing JSON representation and the compact little-endian binary
representation used by an EOSIO-family blockchain.

A high level summary of the API is as follows:

	                      [ ABIDef ]        - parse the user-supplied ABI JSON document
	                         ↓
	                     (BuildContract)    - resolves a Contract: a type graph of named structs,
	                         ↓                 variants, aliases and derived optional/array/extension types
	                  [ Contract ]
	                         ↓
	[ JSON text ] →   (JSONToBin)           - drives a JSON event stream against a named type,
	                         ↓                 emitting little-endian bytes
	                  [ binary bytes ]
	                         ↓
	                    (BinToJSON)         - the dual: reads a byte cursor against a named
	                         ↓                 type, emitting a JSON document
	[ JSON text ] ←

Example:

	abiJSON := `{
		"version": "eosio::abi/1.1",
		"structs": [
			{"name": "transfer", "base": "", "fields": [
				{"name": "from", "type": "name"},
				{"name": "to", "type": "name"},
				{"name": "quantity", "type": "asset"},
				{"name": "memo", "type": "string"}
			]}
		]
	}`

	contract, _ := abi.BuildContract([]byte(abiJSON))
	bin, _ := contract.JSONToBin("transfer", []byte(`{
		"from": "alice",
		"to": "bob",
		"quantity": "1.0000 EOS",
		"memo": "hi"
	}`))
	jsonOut, _ := contract.BinToJSON("transfer", bin)
*/
package abi

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/sysio-chain/abicodec/internal/abimsgs"
)

// abiVersionPrefix is the only family of ABI document versions this codec
// understands - "eosio::abi/1.0", "eosio::abi/1.1", etc.
const abiVersionPrefix = "eosio::abi/1."

// TypeDef is a named alias: `Type` is resolved via the same suffix rules
// (`?`, `[]`, `$`) as any other type reference.
type TypeDef struct {
	NewTypeName string `json:"new_type_name"`
	Type        string `json:"type"`
}

// FieldDef is a single named, typed field of a StructDef.
type FieldDef struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// StructDef declares an ordered set of fields, with an optional base
// struct whose fields are logically prepended.
type StructDef struct {
	Name   string     `json:"name"`
	Base   string     `json:"base"`
	Fields []FieldDef `json:"fields"`
}

// VariantDef declares a tagged union over an ordered list of case types.
// The JSON wire form of a value is `["<case type name>", <value>]` and the
// binary wire form is `(varuint32 case index, <value>)`.
type VariantDef struct {
	Name  string   `json:"name"`
	Types []string `json:"types"`
}

// ActionDef maps an action name to the struct type that defines its
// payload.
type ActionDef struct {
	Name              string `json:"name"`
	Type              string `json:"type"`
	RicardianContract string `json:"ricardian_contract,omitempty"`
}

// TableDef maps a table name to the struct type of its rows.
type TableDef struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	IndexType string   `json:"index_type,omitempty"`
	KeyNames  []string `json:"key_names,omitempty"`
	KeyTypes  []string `json:"key_types,omitempty"`
}

// ClausePair is a named Ricardian clause body.
type ClausePair struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

// ErrorMessage associates a numeric error code with explanatory text.
type ErrorMessage struct {
	ErrorCode uint64 `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// ABIDef is the Go model of the user-supplied ABI JSON document. Fields
// that this codec does not interpret (clauses, error messages, Ricardian
// contract text, action/table metadata beyond the name->type mapping)
// are still parsed and retained, so a round-trip of the document itself
// is lossless even though the codec only acts on the type-bearing parts.
type ABIDef struct {
	Version          string            `json:"version"`
	Types            []TypeDef         `json:"types,omitempty"`
	Structs          []StructDef       `json:"structs,omitempty"`
	Actions          []ActionDef       `json:"actions,omitempty"`
	Tables           []TableDef        `json:"tables,omitempty"`
	RicardianClauses []ClausePair      `json:"ricardian_clauses,omitempty"`
	ErrorMessages    []ErrorMessage    `json:"error_messages,omitempty"`
	AbiExtensions    []json.RawMessage `json:"abi_extensions,omitempty"`
	Variants         []VariantDef      `json:"variants,omitempty"`
}

// ActionType looks up the struct type name registered for an action name.
func (a *ABIDef) ActionType(name string) (string, bool) {
	for _, act := range a.Actions {
		if act.Name == name {
			return act.Type, true
		}
	}
	return "", false
}

// TableType looks up the struct type name registered for a table name.
func (a *ABIDef) TableType(name string) (string, bool) {
	for _, tbl := range a.Tables {
		if tbl.Name == name {
			return tbl.Type, true
		}
	}
	return "", false
}

// ActionTypeCtx is ActionType for callers that want an error (rather than
// a bool) when the action name isn't registered - the entry point used by
// the json-to-bin/bin-to-json CLI commands' --action flag.
func (a *ABIDef) ActionTypeCtx(ctx context.Context, name string) (string, error) {
	if t, ok := a.ActionType(name); ok {
		return t, nil
	}
	return "", i18n.NewError(ctx, abimsgs.MsgNoSuchActionType, name)
}

// TableTypeCtx is TableType for callers that want an error (rather than a
// bool) when the table name isn't registered - the entry point used by the
// json-to-bin/bin-to-json CLI commands' --table flag.
func (a *ABIDef) TableTypeCtx(ctx context.Context, name string) (string, error) {
	if t, ok := a.TableType(name); ok {
		return t, nil
	}
	return "", i18n.NewError(ctx, abimsgs.MsgNoSuchTableType, name)
}

// BuildContract parses an ABI JSON document and resolves it into a
// Contract - a type graph ready to drive JSONToBin/BinToJSON.
func BuildContract(abiJSON []byte) (*Contract, error) {
	return BuildContractCtx(context.Background(), abiJSON)
}

func BuildContractCtx(ctx context.Context, abiJSON []byte) (*Contract, error) {
	var def ABIDef
	if err := json.Unmarshal(abiJSON, &def); err != nil {
		return nil, i18n.WrapError(ctx, err, abimsgs.MsgUnsupportedABIVersion, "", abiVersionPrefix)
	}
	if !strings.HasPrefix(def.Version, abiVersionPrefix) {
		return nil, i18n.NewError(ctx, abimsgs.MsgUnsupportedABIVersion, def.Version, abiVersionPrefix)
	}
	c := newContract(&def)
	if err := c.fillContract(ctx); err != nil {
		return nil, err
	}
	return c, nil
}
