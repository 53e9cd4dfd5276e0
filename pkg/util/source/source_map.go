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
package source

import (
	"fmt"
)

// Span identifies a contiguous range of characters in a source file, from
// start (inclusive) to end (exclusive).  Indices count runes, not bytes.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a span over a given range, which must not be inverted.
func NewSpan(start int, end int) Span {
	if start > end {
		panic(fmt.Sprintf("invalid span [%d,%d)", start, end))
	}
	//
	return Span{start, end}
}

// Start returns the index of the first character of this span.
func (p Span) Start() int {
	return p.start
}

// End returns one past the index of the last character of this span.
func (p Span) End() int {
	return p.end
}

// Length returns the number of characters in this span.
func (p Span) Length() int {
	return p.end - p.start
}

// Map records the span of the source file from which each parsed term
// originated, so that errors found after parsing (e.g. an unknown constraint)
// can still be reported against the offending text.
type Map[T comparable] struct {
	spans   map[T]Span
	srcfile File
}

// NewSourceMap constructs an empty source map over a given file.
func NewSourceMap[T comparable](srcfile File) *Map[T] {
	return &Map[T]{make(map[T]Span), srcfile}
}

// Source returns the file over which this map is defined.
func (p *Map[T]) Source() File {
	return p.srcfile
}

// Put records the span of a given term, which must not already be recorded.
func (p *Map[T]) Put(item T, span Span) {
	if _, ok := p.spans[item]; ok {
		panic(fmt.Sprintf("duplicate source mapping for %v", item))
	}
	//
	p.spans[item] = span
}

// Has checks whether a span is recorded for a given term.
func (p *Map[T]) Has(item T) bool {
	_, ok := p.spans[item]
	//
	return ok
}

// Get returns the span recorded for a given term, and panics if there is none.
func (p *Map[T]) Get(item T) Span {
	span, ok := p.spans[item]
	//
	if !ok {
		panic(fmt.Sprintf("missing source mapping for %v", item))
	}
	//
	return span
}

// SyntaxError constructs a syntax error reported against the span of a given
// term.
func (p *Map[T]) SyntaxError(item T, msg string) *SyntaxError {
	return p.srcfile.SyntaxError(p.Get(item), msg)
}
