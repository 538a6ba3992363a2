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

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testABI = `{
	"version": "eosio::abi/1.1",
	"structs": [
		{"name": "greeting", "base": "", "fields": [{"name": "text", "type": "string"}]}
	]
}`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateCommand(t *testing.T) {
	abiPath := writeTempFile(t, "test.abi.json", testABI)
	rootCmd.SetArgs([]string{"validate", "-a", abiPath})
	defer rootCmd.SetArgs([]string{})
	assert.NoError(t, Execute())
}

func TestValidateCommandBadABI(t *testing.T) {
	abiPath := writeTempFile(t, "bad.abi.json", `{"version":"not-an-abi"}`)
	rootCmd.SetArgs([]string{"validate", "-a", abiPath})
	defer rootCmd.SetArgs([]string{})
	assert.Error(t, Execute())
}

func TestJSONToBinAndBackCommands(t *testing.T) {
	abiPath := writeTempFile(t, "test.abi.json", testABI)
	jsonPath := writeTempFile(t, "in.json", `{"text":"hi"}`)

	rootCmd.SetArgs([]string{"json-to-bin", "-a", abiPath, "-t", "greeting", "-i", jsonPath})
	defer rootCmd.SetArgs([]string{})
	assert.NoError(t, Execute())

	// {"text":"hi"} as greeting: varuint32 length 2, then "hi".
	hexPath := writeTempFile(t, "in.hex", "026869")
	rootCmd.SetArgs([]string{"bin-to-json", "-a", abiPath, "-t", "greeting", "-i", hexPath})
	assert.NoError(t, Execute())
}

// resetJSONToBinFlags clears the json-to-bin selector flags, since cobra
// keeps a flag's value from one Execute call to the next.
func resetJSONToBinFlags() {
	jsonToBinType, jsonToBinAction, jsonToBinTable = "", "", ""
}

const actionTableABI = `{
	"version": "eosio::abi/1.1",
	"structs": [
		{"name": "greeting", "base": "", "fields": [{"name": "text", "type": "string"}]}
	],
	"actions": [
		{"name": "sayhi", "type": "greeting", "ricardian_contract": ""}
	],
	"tables": [
		{"name": "greetings", "type": "greeting", "index_type": "i64", "key_names": [], "key_types": []}
	]
}`

func TestJSONToBinByActionName(t *testing.T) {
	resetJSONToBinFlags()
	abiPath := writeTempFile(t, "test.abi.json", actionTableABI)
	jsonPath := writeTempFile(t, "in.json", `{"text":"hi"}`)

	rootCmd.SetArgs([]string{"json-to-bin", "-a", abiPath, "--action", "sayhi", "-i", jsonPath})
	defer rootCmd.SetArgs([]string{})
	assert.NoError(t, Execute())
}

func TestJSONToBinByTableName(t *testing.T) {
	resetJSONToBinFlags()
	abiPath := writeTempFile(t, "test.abi.json", actionTableABI)
	jsonPath := writeTempFile(t, "in.json", `{"text":"hi"}`)

	rootCmd.SetArgs([]string{"json-to-bin", "-a", abiPath, "--table", "greetings", "-i", jsonPath})
	defer rootCmd.SetArgs([]string{})
	assert.NoError(t, Execute())
}

func TestJSONToBinUnknownActionName(t *testing.T) {
	resetJSONToBinFlags()
	abiPath := writeTempFile(t, "test.abi.json", actionTableABI)
	jsonPath := writeTempFile(t, "in.json", `{"text":"hi"}`)

	rootCmd.SetArgs([]string{"json-to-bin", "-a", abiPath, "--action", "nosuchaction", "-i", jsonPath})
	defer rootCmd.SetArgs([]string{})
	assert.Error(t, Execute())
}

func TestJSONToBinNoTypeActionOrTable(t *testing.T) {
	resetJSONToBinFlags()
	abiPath := writeTempFile(t, "test.abi.json", actionTableABI)
	jsonPath := writeTempFile(t, "in.json", `{"text":"hi"}`)

	rootCmd.SetArgs([]string{"json-to-bin", "-a", abiPath, "-i", jsonPath})
	defer rootCmd.SetArgs([]string{})
	assert.Error(t, Execute())
}

func TestVersionCommand(t *testing.T) {
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs([]string{})
	assert.NoError(t, Execute())
}
