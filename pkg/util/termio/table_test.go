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
package termio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Table_00(t *testing.T) {
	var buf bytes.Buffer
	//
	table := NewTablePrinter(2)
	table.AddRow("x⊕", "ε")
	table.AddRow("x.load⊕", "recall_load")
	//
	require.NoError(t, table.Print(&buf))
	assert.Equal(t, "x⊕      | ε\nx.load⊕ | recall_load\n", buf.String())
	assert.Equal(t, uint(2), table.Height())
}

func Test_Table_01(t *testing.T) {
	var buf bytes.Buffer
	//
	table := NewTablePrinter(2)
	table.AddRow("source", "path")
	table.AddRow("a", "recall_in_0.forget_load")
	table.SetMaxWidth(1, 8)
	//
	require.NoError(t, table.Print(&buf))
	assert.Equal(t, "source | path\na      | recall..\n", buf.String())
}

func Test_Table_02(t *testing.T) {
	var buf bytes.Buffer
	//
	table := NewTablePrinter(1)
	row := table.AddRow("x")
	table.SetEscape(0, row, BoldAnsiEscape().FgColour(TERM_BLUE))
	require.NoError(t, table.Print(&buf))
	assert.Equal(t, "\033[1;34mx\033[0m\n", buf.String())
	// Escapes can be disabled
	buf.Reset()
	table.AnsiEscapes(false)
	require.NoError(t, table.Print(&buf))
	assert.Equal(t, "x\n", buf.String())
}

func Test_Escape_00(t *testing.T) {
	assert.Equal(t, "\033[m", NewAnsiEscape().Build())
	assert.Equal(t, "\033[31;42m", NewAnsiEscape().FgColour(TERM_RED).BgColour(TERM_GREEN).Build())
	assert.Equal(t, "\033[33mwarn\033[0m", NewAnsiEscape().FgColour(TERM_YELLOW).Wrap("warn"))
}
