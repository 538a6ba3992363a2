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

	"github.com/spf13/cobra"
)

var (
	jsonToBinType   string
	jsonToBinAction string
	jsonToBinTable  string
	jsonToBinInput  string
)

func jsonToBinCommand() *cobra.Command {
	jsonToBinCmd := &cobra.Command{
		Use:   "json-to-bin",
		Short: "Encodes a JSON document as the binary wire format of a named ABI type",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := rootContext()
			c, err := loadContract()
			if err != nil {
				return fail(err)
			}
			typeName, err := resolveTypeName(ctx, c, jsonToBinType, jsonToBinAction, jsonToBinTable)
			if err != nil {
				return fail(err)
			}
			data, err := os.ReadFile(jsonToBinInput)
			if err != nil {
				return fail(err)
			}
			bin, err := c.JSONToBinCtx(ctx, typeName, data)
			if err != nil {
				return fail(err)
			}
			fmt.Println(hex.EncodeToString(bin))
			return nil
		},
	}
	jsonToBinCmd.Flags().StringVarP(&abiFile, "abi", "a", "", "path to the ABI JSON document")
	jsonToBinCmd.Flags().StringVarP(&jsonToBinType, "type", "t", "", "name of the ABI type to encode as")
	jsonToBinCmd.Flags().StringVar(&jsonToBinAction, "action", "", "name of an ABI action whose registered type to encode as, instead of --type")
	jsonToBinCmd.Flags().StringVar(&jsonToBinTable, "table", "", "name of an ABI table whose registered type to encode as, instead of --type")
	jsonToBinCmd.Flags().StringVarP(&jsonToBinInput, "input", "i", "", "path to the JSON input file")
	_ = jsonToBinCmd.MarkFlagRequired("abi")
	_ = jsonToBinCmd.MarkFlagRequired("input")
	return jsonToBinCmd
}
