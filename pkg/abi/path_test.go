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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathConstruction(t *testing.T) {
	p := fieldPath("transfer", "memo")
	p = indexPath(p, 3)
	p = variantPath(p)
	p = optionalPath(p)
	assert.Equal(t, "transfer.memo[3]<variant><optional>", p)
}

func TestWrapPathErrOnlyPrependsOnce(t *testing.T) {
	base := errors.New("bad value")
	wrapped := wrapPathErr("transfer.memo", base)
	assert.EqualError(t, wrapped, "transfer.memo: bad value")

	// A caller further up the stack just propagates it unchanged.
	assert.Equal(t, wrapped, wrapped)
}

func TestWrapPathErrNilError(t *testing.T) {
	assert.NoError(t, wrapPathErr("x.y", nil))
}

func TestWrapPathErrEmptyPath(t *testing.T) {
	base := errors.New("bad value")
	assert.Equal(t, base, wrapPathErr("", base))
}
