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
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	binToJSONType   string
	binToJSONAction string
	binToJSONTable  string
	binToJSONInput  string
)

func binToJSONCommand() *cobra.Command {
	binToJSONCmd := &cobra.Command{
		Use:   "bin-to-json",
		Short: "Decodes hex-encoded binary wire data into JSON for a named ABI type",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := rootContext()
			c, err := loadContract()
			if err != nil {
				return fail(err)
			}
			typeName, err := resolveTypeName(ctx, c, binToJSONType, binToJSONAction, binToJSONTable)
			if err != nil {
				return fail(err)
			}
			raw, err := os.ReadFile(binToJSONInput)
			if err != nil {
				return fail(err)
			}
			bin, err := hex.DecodeString(strings.TrimSpace(string(raw)))
			if err != nil {
				return fail(err)
			}
			out, err := c.BinToJSONCtx(ctx, typeName, bin)
			if err != nil {
				return fail(err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
	binToJSONCmd.Flags().StringVarP(&abiFile, "abi", "a", "", "path to the ABI JSON document")
	binToJSONCmd.Flags().StringVarP(&binToJSONType, "type", "t", "", "name of the ABI type to decode as")
	binToJSONCmd.Flags().StringVar(&binToJSONAction, "action", "", "name of an ABI action whose registered type to decode as, instead of --type")
	binToJSONCmd.Flags().StringVar(&binToJSONTable, "table", "", "name of an ABI table whose registered type to decode as, instead of --type")
	binToJSONCmd.Flags().StringVarP(&binToJSONInput, "input", "i", "", "path to a file containing hex-encoded binary data")
	_ = binToJSONCmd.MarkFlagRequired("abi")
	_ = binToJSONCmd.MarkFlagRequired("input")
	return binToJSONCmd
}
