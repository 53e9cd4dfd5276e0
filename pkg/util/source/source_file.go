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
	"os"
	"slices"
)

// File represents a given source file (typically stored on disk).  Contents
// are held as runes, such that spans index characters rather than bytes.  This
// matters since type variables routinely contain symbols such as "σ".
type File struct {
	// File name for this source file.
	filename string
	// Contents of this file.
	contents []rune
	// Starting offset of each line, computed on demand.
	lines []int
}

// NewSourceFile constructs a new source file from a given byte array.
func NewSourceFile(filename string, bytes []byte) *File {
	return &File{filename, []rune(string(bytes)), nil}
}

// ReadFile reads a source file from disk.
func ReadFile(filename string) (*File, error) {
	bytes, err := os.ReadFile(filename)
	//
	if err != nil {
		return nil, err
	}
	//
	return NewSourceFile(filename, bytes), nil
}

// ReadFiles reads a given set of source files, or produces an error.
func ReadFiles(filenames ...string) ([]File, error) {
	files := make([]File, len(filenames))
	//
	for i, n := range filenames {
		file, err := ReadFile(n)
		//
		if err != nil {
			return nil, err
		}
		//
		files[i] = *file
	}
	//
	return files, nil
}

// Filename returns the filename associated with this source file.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the contents of this source file.
func (s *File) Contents() []rune {
	return s.contents
}

// SyntaxError constructs a syntax error over a given span of this file with a
// given message.
func (s *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// FindFirstEnclosingLine determines the first line in this source file which
// encloses the start of a span.  If the span starts beyond the end of the file,
// then the last physical line is returned.  The returned line is not guaranteed
// to enclose the entire span, as spans can cross multiple lines.
func (s *File) FindFirstEnclosingLine(span Span) Line {
	if s.lines == nil {
		s.lines = lineOffsets(s.contents)
	}
	// Find last line starting at or before the span.
	index, found := slices.BinarySearch(s.lines, span.start)
	//
	if !found {
		index--
	}
	//
	start := s.lines[index]
	end := len(s.contents)
	//
	if index+1 < len(s.lines) {
		// Exclude the newline itself
		end = s.lines[index+1] - 1
	}
	//
	return Line{s.contents, Span{start, end}, index + 1}
}

// Line provides information about a given line within the original string.
// This includes the line number (counting from 1), and the span of the line
// within the original string.
type Line struct {
	text   []rune
	span   Span
	number int
}

// Get the string representing this line.
func (p Line) String() string {
	return string(p.text[p.span.start:p.span.end])
}

// Number gets the line number of this line, where the first line in a string
// has line number 1.
func (p Line) Number() int {
	return p.number
}

// Start returns the starting index of this line in the original string.
func (p Line) Start() int {
	return p.span.start
}

// Length returns the number of characters in this line.
func (p Line) Length() int {
	return p.span.Length()
}

// Column returns the column (counting from 1) of a given index into the original
// string, relative to this line.
func (p Line) Column(index int) int {
	return index - p.span.start + 1
}

// Determine the starting offset of every line in some text.
func lineOffsets(text []rune) []int {
	offsets := []int{0}
	//
	for i, r := range text {
		if r == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	//
	return offsets
}
