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

	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "abiconv",
	Short: "EOSIO-family ABI codec - converts between JSON and binary using a contract's ABI",
	Long: `abiconv resolves an ABI document into a type graph and drives values
of any named type through it, either encoding JSON into the chain's binary
wire format or decoding binary back into JSON.`,
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(buildContractCommand())
	rootCmd.AddCommand(jsonToBinCommand())
	rootCmd.AddCommand(binToJSONCommand())
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command, returning any error for the caller to
// report and translate into a process exit code.
func Execute() error {
	return rootCmd.Execute()
}

func rootContext() context.Context {
	ctx := context.Background()
	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	logger := logrus.New()
	logger.SetLevel(level)
	return log.WithLogger(ctx, logrus.NewEntry(logger))
}

func fail(err error) error {
	fmt.Fprintln(os.Stderr, err.Error())
	return err
}
