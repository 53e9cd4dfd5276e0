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
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// TablePrinter is useful for printing tables to the terminal.  Cells are left
// aligned, and widths are measured in runes (rather than bytes) since type
// variables routinely contain symbols such as "⊕" and "σ".
type TablePrinter struct {
	widths        []uint
	maxWidths     []uint
	rows          [][]string
	escapes       [][]string
	enableEscapes bool
}

// NewTablePrinter constructs a new table with a given number of columns.  Rows
// are added as needed.
func NewTablePrinter(width uint) *TablePrinter {
	return &TablePrinter{
		widths:        make([]uint, width),
		maxWidths:     make([]uint, width),
		enableEscapes: true,
	}
}

// Height returns the height of this table.
func (p *TablePrinter) Height() uint {
	return uint(len(p.rows))
}

// AddRow appends a row to this table, returning its index.
func (p *TablePrinter) AddRow(vals ...string) uint {
	if len(vals) != len(p.widths) {
		panic("incorrect number of columns")
	}
	// Update column widths
	for i, v := range vals {
		p.widths[i] = max(p.widths[i], uint(utf8.RuneCountInString(v)))
	}
	//
	p.rows = append(p.rows, vals)
	p.escapes = append(p.escapes, make([]string, len(vals)))
	//
	return uint(len(p.rows) - 1)
}

// Get the contents of a given cell in this table
func (p *TablePrinter) Get(col uint, row uint) string {
	return p.rows[row][col]
}

// SetEscape set the colour to use when printing the contents of a given cell
func (p *TablePrinter) SetEscape(col uint, row uint, escape AnsiEscape) {
	p.escapes[row][col] = escape.Build()
}

// AnsiEscapes enables or disables the use of ANSI escapes (e.g. for showing
// colour).  Disabling escapes is useful in environments that don't support
// escapes as, otherwise, you get a lot of visible excape characters being
// printed.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.enableEscapes = enable
}

// SetMaxWidth puts an upper bound on the width of a given column, where zero
// means unbounded.  Cells exceeding this are truncated.
func (p *TablePrinter) SetMaxWidth(col uint, width uint) {
	p.maxWidths[col] = width
}

// Print the table to a given writer.
func (p *TablePrinter) Print(out io.Writer) error {
	var builder strings.Builder
	//
	for i, row := range p.rows {
		for j, col := range row {
			width := p.width(uint(j))
			text := truncate(col, width)
			escape := p.escapes[i][j]
			//
			if j != 0 {
				builder.WriteString(" | ")
			}
			// Print colour (if applicable)
			if p.enableEscapes && escape != "" {
				builder.WriteString(escape)
			}
			//
			builder.WriteString(text)
			// Cancel colour (if applicable)
			if p.enableEscapes && escape != "" {
				builder.WriteString(ResetAnsiEscape().Build())
			}
			// Pad all but the last column
			if j+1 != len(row) {
				builder.WriteString(strings.Repeat(" ", int(width)-utf8.RuneCountInString(text)))
			}
		}
		//
		builder.WriteString("\n")
	}
	//
	_, err := fmt.Fprint(out, builder.String())
	//
	return err
}

func (p *TablePrinter) width(col uint) uint {
	if p.maxWidths[col] != 0 {
		return min(p.widths[col], p.maxWidths[col])
	}
	//
	return p.widths[col]
}

// Truncate a given string to at most a given number of runes, marking it as
// truncated with a trailing "..".
func truncate(text string, width uint) string {
	if uint(utf8.RuneCountInString(text)) <= width {
		return text
	} else if width <= 2 {
		return string([]rune(text)[:width])
	}
	//
	return string([]rune(text)[:width-2]) + ".."
}
