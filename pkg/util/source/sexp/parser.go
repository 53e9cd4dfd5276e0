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
package sexp

import (
	"unicode"

	"github.com/consensys/go-retypd/pkg/util/source"
)

// ParseAll converts a given source file into zero or more S-expressions, or
// returns an error if the file is malformed.  A source map is also returned,
// recording the span of every S-expression parsed.  Comments start with ';'
// and extend to the end of the line.
func ParseAll(srcfile *source.File) ([]SExp, *source.Map[SExp], *source.SyntaxError) {
	p := parser{
		srcfile: srcfile,
		text:    srcfile.Contents(),
		srcmap:  source.NewSourceMap[SExp](*srcfile),
	}
	//
	var terms []SExp
	//
	for p.skipWhiteSpace() {
		term, err := p.parseTerm()
		//
		if err != nil {
			return terms, p.srcmap, err
		}
		//
		terms = append(terms, term)
	}
	//
	return terms, p.srcmap, nil
}

type parser struct {
	srcfile *source.File
	text    []rune
	index   int
	srcmap  *source.Map[SExp]
}

// Parse the term at the current position, which is not whitespace.
func (p *parser) parseTerm() (SExp, *source.SyntaxError) {
	var (
		term  SExp
		start = p.index
	)
	//
	switch p.text[p.index] {
	case ')':
		return nil, p.error(start, "unexpected end-of-list")
	case '(':
		p.index++
		//
		elements, err := p.parseElements(start)
		if err != nil {
			return nil, err
		}
		//
		term = &List{elements}
	default:
		term = &Symbol{p.parseSymbol()}
	}
	// Register item in source map
	p.srcmap.Put(term, source.NewSpan(start, p.index))
	//
	return term, nil
}

// Parse the elements of a list which began at a given position, up to and
// including the closing bracket.
func (p *parser) parseElements(start int) ([]SExp, *source.SyntaxError) {
	var elements []SExp
	//
	for p.skipWhiteSpace() {
		if p.text[p.index] == ')' {
			p.index++
			return elements, nil
		}
		//
		element, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		//
		elements = append(elements, element)
	}
	// Report against the opening bracket
	return nil, p.error(start, "unexpected end-of-file")
}

func (p *parser) parseSymbol() string {
	start := p.index
	//
	for p.index < len(p.text) && isSymbolLetter(p.text[p.index]) {
		p.index++
	}
	//
	return string(p.text[start:p.index])
}

// Skip over any whitespace (including comments), returning false if the end of
// the file is reached.
func (p *parser) skipWhiteSpace() bool {
	for p.index < len(p.text) {
		switch c := p.text[p.index]; {
		case c == ';':
			for p.index < len(p.text) && p.text[p.index] != '\n' {
				p.index++
			}
		case unicode.IsSpace(c):
			p.index++
		default:
			return true
		}
	}
	//
	return false
}

func (p *parser) error(index int, msg string) *source.SyntaxError {
	return p.srcfile.SyntaxError(source.NewSpan(index, index+1), msg)
}
