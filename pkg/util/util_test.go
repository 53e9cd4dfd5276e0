// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Option_00(t *testing.T) {
	some := Some("load")
	none := None[string]()
	//
	assert.True(t, some.HasValue())
	assert.Equal(t, "load", some.Unwrap())
	assert.Equal(t, "Some(load)", some.String())
	//
	assert.True(t, none.IsEmpty())
	assert.Equal(t, "None", none.String())
	assert.Panics(t, func() { none.Unwrap() })
	//
	v, ok := none.Get()
	assert.False(t, ok)
	assert.Equal(t, "", v)
}

func Test_PerfStats_00(t *testing.T) {
	stats := NewPerfStats()
	assert.GreaterOrEqual(t, stats.Elapsed().Nanoseconds(), int64(0))
	// Logging is a no-op unless debugging
	stats.Log("nothing")
}
