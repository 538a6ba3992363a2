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
	"fmt"
	"strconv"
)

// Path construction mirrors the breadcrumb rules: struct frames
// contribute ".field_name", array frames contribute "[index]", variant
// frames contribute "<variant>", optional frames contribute
// "<optional>". The smallest offending subterm is always the leaf of
// the path, since each recursive call only learns about the failure
// directly below it.

func fieldPath(base, name string) string {
	return base + "." + name
}

func indexPath(base string, i int) string {
	return base + "[" + strconv.Itoa(i) + "]"
}

func variantPath(base string) string {
	return base + "<variant>"
}

func optionalPath(base string) string {
	return base + "<optional>"
}

// wrapPathErr prepends the structural path to an error exactly once, at
// the point where the error first occurs. Callers further up the
// recursion just propagate the already-wrapped error unchanged.
func wrapPathErr(path string, err error) error {
	if err == nil || path == "" {
		return err
	}
	return fmt.Errorf("%s: %w", path, err)
}
