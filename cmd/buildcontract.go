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
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/sysio-chain/abicodec/pkg/abi"
)

var abiFile string

func buildContractCommand() *cobra.Command {
	buildContractCmd := &cobra.Command{
		Use:   "validate",
		Short: "Resolves an ABI document's type graph and reports any errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := rootContext()
			data, err := os.ReadFile(abiFile)
			if err != nil {
				return fail(err)
			}
			c, err := abi.BuildContractCtx(ctx, data)
			if err != nil {
				return fail(err)
			}
			fmt.Printf("ok: %d struct(s), %d variant(s), %d type alias(es)\n",
				len(c.ABI().Structs), len(c.ABI().Variants), len(c.ABI().Types))
			return nil
		},
	}
	buildContractCmd.Flags().StringVarP(&abiFile, "abi", "a", "", "path to the ABI JSON document")
	_ = buildContractCmd.MarkFlagRequired("abi")
	return buildContractCmd
}

// loadContract is shared by the encode/decode subcommands.
func loadContract() (*abi.Contract, error) {
	data, err := os.ReadFile(abiFile)
	if err != nil {
		return nil, err
	}
	return abi.BuildContractCtx(rootContext(), data)
}

// resolveTypeName is shared by the encode/decode subcommands: exactly one
// of typeName, actionName, tableName must be set, and an action/table name
// is resolved to its registered struct type via the ABI document.
func resolveTypeName(ctx context.Context, c *abi.Contract, typeName, actionName, tableName string) (string, error) {
	set := 0
	for _, s := range []string{typeName, actionName, tableName} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return "", fmt.Errorf("exactly one of --type, --action, --table must be set")
	}
	switch {
	case typeName != "":
		return typeName, nil
	case actionName != "":
		return c.ABI().ActionTypeCtx(ctx, actionName)
	case tableName != "":
		return c.ABI().TableTypeCtx(ctx, tableName)
	default:
		return "", fmt.Errorf("exactly one of --type, --action, --table must be set")
	}
}
